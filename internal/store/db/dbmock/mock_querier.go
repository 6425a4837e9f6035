// Package dbmock is a hand-written go.uber.org/mock-style fake for
// db.Querier, in the shape mockgen would produce for the interface (see
// apps/iam-service/internal/repository/mock, whose generated output isn't
// checked into this tree).
package dbmock

import (
	"context"
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/observ-ing/core-sub000/internal/store/db"
)

// MockQuerier is a mock of the db.Querier interface.
type MockQuerier struct {
	ctrl     *gomock.Controller
	recorder *MockQuerierMockRecorder
}

// MockQuerierMockRecorder is the mock recorder for MockQuerier.
type MockQuerierMockRecorder struct {
	mock *MockQuerier
}

// NewMockQuerier creates a new mock instance.
func NewMockQuerier(ctrl *gomock.Controller) *MockQuerier {
	mock := &MockQuerier{ctrl: ctrl}
	mock.recorder = &MockQuerierMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockQuerier) EXPECT() *MockQuerierMockRecorder {
	return m.recorder
}

func (m *MockQuerier) UpsertOccurrence(ctx context.Context, o db.Occurrence) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertOccurrence", ctx, o)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) UpsertOccurrence(ctx, o any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertOccurrence",
		reflect.TypeOf((*MockQuerier)(nil).UpsertOccurrence), ctx, o)
}

func (m *MockQuerier) DeleteOccurrence(ctx context.Context, uri string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteOccurrence", ctx, uri)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) DeleteOccurrence(ctx, uri any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteOccurrence",
		reflect.TypeOf((*MockQuerier)(nil).DeleteOccurrence), ctx, uri)
}

func (m *MockQuerier) ReplaceObservers(ctx context.Context, occurrenceURI string, observers []db.ObserverParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReplaceObservers", ctx, occurrenceURI, observers)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) ReplaceObservers(ctx, occurrenceURI, observers any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReplaceObservers",
		reflect.TypeOf((*MockQuerier)(nil).ReplaceObservers), ctx, occurrenceURI, observers)
}

func (m *MockQuerier) UpsertIdentification(ctx context.Context, i db.Identification) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertIdentification", ctx, i)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) UpsertIdentification(ctx, i any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertIdentification",
		reflect.TypeOf((*MockQuerier)(nil).UpsertIdentification), ctx, i)
}

func (m *MockQuerier) DeleteIdentification(ctx context.Context, uri string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteIdentification", ctx, uri)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) DeleteIdentification(ctx, uri any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteIdentification",
		reflect.TypeOf((*MockQuerier)(nil).DeleteIdentification), ctx, uri)
}

func (m *MockQuerier) GetIdentificationSubject(ctx context.Context, uri string) (string, int32, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetIdentificationSubject", ctx, uri)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(int32)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

func (mr *MockQuerierMockRecorder) GetIdentificationSubject(ctx, uri any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetIdentificationSubject",
		reflect.TypeOf((*MockQuerier)(nil).GetIdentificationSubject), ctx, uri)
}

func (m *MockQuerier) ListIdentificationsForSubject(ctx context.Context, subjectURI string, subjectIndex int32) ([]db.Identification, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListIdentificationsForSubject", ctx, subjectURI, subjectIndex)
	ret0, _ := ret[0].([]db.Identification)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) ListIdentificationsForSubject(ctx, subjectURI, subjectIndex any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListIdentificationsForSubject",
		reflect.TypeOf((*MockQuerier)(nil).ListIdentificationsForSubject), ctx, subjectURI, subjectIndex)
}

func (m *MockQuerier) UpsertComment(ctx context.Context, c db.Comment) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertComment", ctx, c)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) UpsertComment(ctx, c any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertComment",
		reflect.TypeOf((*MockQuerier)(nil).UpsertComment), ctx, c)
}

func (m *MockQuerier) DeleteComment(ctx context.Context, uri string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteComment", ctx, uri)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) DeleteComment(ctx, uri any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteComment",
		reflect.TypeOf((*MockQuerier)(nil).DeleteComment), ctx, uri)
}

func (m *MockQuerier) InsertLikeIgnoreConflict(ctx context.Context, l db.Like) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertLikeIgnoreConflict", ctx, l)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) InsertLikeIgnoreConflict(ctx, l any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertLikeIgnoreConflict",
		reflect.TypeOf((*MockQuerier)(nil).InsertLikeIgnoreConflict), ctx, l)
}

func (m *MockQuerier) DeleteLike(ctx context.Context, uri string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteLike", ctx, uri)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) DeleteLike(ctx, uri any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteLike",
		reflect.TypeOf((*MockQuerier)(nil).DeleteLike), ctx, uri)
}

func (m *MockQuerier) UpsertInteraction(ctx context.Context, i db.Interaction) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertInteraction", ctx, i)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) UpsertInteraction(ctx, i any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertInteraction",
		reflect.TypeOf((*MockQuerier)(nil).UpsertInteraction), ctx, i)
}

func (m *MockQuerier) DeleteInteraction(ctx context.Context, uri string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteInteraction", ctx, uri)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) DeleteInteraction(ctx, uri any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteInteraction",
		reflect.TypeOf((*MockQuerier)(nil).DeleteInteraction), ctx, uri)
}

func (m *MockQuerier) UpsertCommunityIdentification(ctx context.Context, c db.CommunityIdentification) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertCommunityIdentification", ctx, c)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) UpsertCommunityIdentification(ctx, c any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertCommunityIdentification",
		reflect.TypeOf((*MockQuerier)(nil).UpsertCommunityIdentification), ctx, c)
}

func (m *MockQuerier) DeleteCommunityIdentification(ctx context.Context, subjectURI string, subjectIndex int32) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteCommunityIdentification", ctx, subjectURI, subjectIndex)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) DeleteCommunityIdentification(ctx, subjectURI, subjectIndex any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteCommunityIdentification",
		reflect.TypeOf((*MockQuerier)(nil).DeleteCommunityIdentification), ctx, subjectURI, subjectIndex)
}

func (m *MockQuerier) GetCursor(ctx context.Context) (*int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCursor", ctx)
	ret0, _ := ret[0].(*int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) GetCursor(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCursor",
		reflect.TypeOf((*MockQuerier)(nil).GetCursor), ctx)
}

func (m *MockQuerier) UpsertCursor(ctx context.Context, seq int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertCursor", ctx, seq)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) UpsertCursor(ctx, seq any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertCursor",
		reflect.TypeOf((*MockQuerier)(nil).UpsertCursor), ctx, seq)
}

var _ db.Querier = (*MockQuerier)(nil)
