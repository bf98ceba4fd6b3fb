package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/appgallery/internal/client/models"
)

// ---- fake client ----

// fakeClient реализует client.Client для юнит-тестов сервисов.
type fakeClient struct {
	mu sync.Mutex

	FetchRet []models.Entry
	FetchErr error

	RegisterMsg string
	RegisterErr error
	UpdateMsg   string
	UpdateErr   error
	DeleteMsg   string
	DeleteErr   error
	VerifyOK    bool
	VerifyErr   error

	// block, если задан, держит Register до закрытия канала
	block   chan struct{}
	started chan struct{}

	// для проверок аргументов
	FetchCalls    int
	RegisterCalls int
	UpdateCalls   int
	DeleteCalls   int
	VerifyCalls   int

	LastFields   models.Fields
	LastPassword string
	LastImages   []models.ImagePayload
	LastID       string
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) FetchAll(_ context.Context) ([]models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FetchCalls++
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	return append([]models.Entry(nil), f.FetchRet...), nil
}

func (f *fakeClient) Register(_ context.Context, fields models.Fields, password string, imgs []models.ImagePayload) (string, error) {
	f.mu.Lock()
	f.RegisterCalls++
	f.LastFields, f.LastPassword, f.LastImages = fields, password, imgs
	block, started := f.block, f.started
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if block != nil {
		<-block
	}
	return f.RegisterMsg, f.RegisterErr
}

func (f *fakeClient) Update(_ context.Context, id string, fields models.Fields) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	f.LastID, f.LastFields = id, fields
	return f.UpdateMsg, f.UpdateErr
}

func (f *fakeClient) Delete(_ context.Context, id string, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	f.LastID, f.LastPassword = id, password
	return f.DeleteMsg, f.DeleteErr
}

func (f *fakeClient) VerifyPassword(_ context.Context, id string, password string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.VerifyCalls++
	f.LastID, f.LastPassword = id, password
	return f.VerifyOK, f.VerifyErr
}

func validFields() models.Fields {
	return models.Fields{Author: "kim", Name: "Planner", Description: "plans", URL: "https://planner.example"}
}
