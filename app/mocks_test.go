package app

import (
	"context"

	"github.com/stretchr/testify/mock"

	"salesloader/domain/record"
	"salesloader/ports"
)

type MockConnection struct {
	mock.Mock
}

func (m *MockConnection) Admin(ctx context.Context) (ports.Admin, error) {
	args := m.Called(ctx)
	if a := args.Get(0); a != nil {
		return a.(ports.Admin), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConnection) Table(ctx context.Context, name string) (ports.Table, error) {
	args := m.Called(ctx, name)
	if t := args.Get(0); t != nil {
		return t.(ports.Table), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConnection) Close() error {
	return m.Called().Error(0)
}

type MockAdmin struct {
	mock.Mock
}

func (m *MockAdmin) TableExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdmin) CreateTable(ctx context.Context, name string, families []string) error {
	return m.Called(ctx, name, families).Error(0)
}

func (m *MockAdmin) Close() error {
	return m.Called().Error(0)
}

type MockTable struct {
	mock.Mock
	puts []record.Record
}

func (m *MockTable) Name() string { return "mock" }

func (m *MockTable) Put(ctx context.Context, rec record.Record) error {
	m.puts = append(m.puts, rec)
	return m.Called(ctx, rec).Error(0)
}

func (m *MockTable) Scan(ctx context.Context) (ports.ResultScanner, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.(ports.ResultScanner), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTable) Close() error {
	return m.Called().Error(0)
}
