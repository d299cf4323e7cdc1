// Package mocks holds a go.uber.org/mock/gomock mock for telemetry.RAPLReader,
// matching the teacher's own convention of generating mocks for some
// collaborator interfaces (akita's mock_*_test.go files) alongside
// hand-written fakes for the ones that need richer test introspection.
package mocks

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	telemetry "github.com/sarchlab/euf-controller/internal/telemetry"
)

// MockRAPLReader is a mock of the telemetry.RAPLReader interface.
type MockRAPLReader struct {
	ctrl     *gomock.Controller
	recorder *MockRAPLReaderMockRecorder
}

// MockRAPLReaderMockRecorder is the mock recorder for MockRAPLReader.
type MockRAPLReaderMockRecorder struct {
	mock *MockRAPLReader
}

// NewMockRAPLReader creates a new mock instance.
func NewMockRAPLReader(ctrl *gomock.Controller) *MockRAPLReader {
	mock := &MockRAPLReader{ctrl: ctrl}
	mock.recorder = &MockRAPLReaderMockRecorder{mock}

	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRAPLReader) EXPECT() *MockRAPLReaderMockRecorder {
	return m.recorder
}

// Read mocks base method.
func (m *MockRAPLReader) Read() (telemetry.Snapshot, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Read")
	ret0, _ := ret[0].(telemetry.Snapshot)
	ret1, _ := ret[1].(error)

	return ret0, ret1
}

// Read indicates an expected call of Read.
func (mr *MockRAPLReaderMockRecorder) Read() *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Read", reflect.TypeOf((*MockRAPLReader)(nil).Read))
}
