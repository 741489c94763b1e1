package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/dimsuz/build-publish/pkg/domain/model"
)

// mockGitClient is a hand-rolled mock of interfaces.GitClient
type mockGitClient struct {
	tagNames    []string
	tagNamesErr error

	// commits keyed by the sinceTag argument; "" is the full history
	commits    map[string][]model.Commit
	commitsErr error

	mu         sync.Mutex
	sinceCalls []string
}

func (m *mockGitClient) TagNames(ctx context.Context) ([]string, error) {
	if m.tagNamesErr != nil {
		return nil, m.tagNamesErr
	}
	return m.tagNames, nil
}

func (m *mockGitClient) CommitsSinceTag(ctx context.Context, tagName string) ([]model.Commit, error) {
	m.mu.Lock()
	m.sinceCalls = append(m.sinceCalls, tagName)
	m.mu.Unlock()
	if m.commitsErr != nil {
		return nil, m.commitsErr
	}
	return m.commits[tagName], nil
}

// mockTagStore is an in-memory interfaces.TagStore
type mockTagStore struct {
	mu        sync.Mutex
	records   map[string]model.TagRecord
	loadErr   error
	saveErr   error
	saveCalls int
}

func newMockTagStore() *mockTagStore {
	return &mockTagStore{records: make(map[string]model.TagRecord)}
}

func (m *mockTagStore) Load(variant model.BuildVariant) (*model.TagRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}
	rec, ok := m.records[variant.Name]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *mockTagStore) Exists(variant model.BuildVariant) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.records[variant.Name]
	return ok
}

func (m *mockTagStore) Save(variant model.BuildVariant, rec model.TagRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records[variant.Name] = rec
	return nil
}

// mockNotifier is a hand-rolled mock of interfaces.Notifier
type mockNotifier struct {
	kind       model.TargetKind
	renderErr  error
	deliverErr error

	mu        sync.Mutex
	delivered []model.RenderedMessage
}

func (m *mockNotifier) Kind() model.TargetKind {
	return m.kind
}

func (m *mockNotifier) Render(payload model.Payload) (model.RenderedMessage, error) {
	if m.renderErr != nil {
		return model.RenderedMessage{}, m.renderErr
	}
	return model.RenderedMessage{Kind: m.kind, Body: payload.Changelog}, nil
}

func (m *mockNotifier) Deliver(ctx context.Context, msg model.RenderedMessage) error {
	if m.deliverErr != nil {
		return m.deliverErr
	}
	m.mu.Lock()
	m.delivered = append(m.delivered, msg)
	m.mu.Unlock()
	return nil
}

var errUnreachable = errors.New("endpoint unreachable")
