package rank

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Hearthside-Labs/Homerank/internal/ahp"
	"github.com/Hearthside-Labs/Homerank/internal/store"
)

// MockStore implements store.Store for testing
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListProperties(ctx context.Context, sessionID uuid.UUID) ([]*store.Property, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Property), args.Error(1)
}

func (m *MockStore) ListComparisons(ctx context.Context, sessionID uuid.UUID) ([]*store.Comparison, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Comparison), args.Error(1)
}

func (m *MockStore) UpdatePropertyScores(ctx context.Context, id uuid.UUID, scores *ahp.CriteriaScores) error {
	args := m.Called(ctx, id, scores)
	return args.Error(0)
}

func (m *MockStore) CreateResult(ctx context.Context, r *store.Result) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// Remaining store.Store methods are unused by the runner
func (m *MockStore) CreateSession(ctx context.Context, s *store.Session) error { return nil }
func (m *MockStore) GetSession(ctx context.Context, id uuid.UUID) (*store.Session, error) {
	return nil, nil
}
func (m *MockStore) ListSessions(ctx context.Context, filter store.SessionFilter) ([]*store.Session, error) {
	return nil, nil
}
func (m *MockStore) UpdateSession(ctx context.Context, s *store.Session) error { return nil }
func (m *MockStore) CreateProperty(ctx context.Context, p *store.Property) error { return nil }
func (m *MockStore) GetProperty(ctx context.Context, id uuid.UUID) (*store.Property, error) {
	return nil, nil
}
func (m *MockStore) DeleteProperty(ctx context.Context, id uuid.UUID) error { return nil }
func (m *MockStore) UpsertComparison(ctx context.Context, c *store.Comparison) error { return nil }
func (m *MockStore) DeleteComparisons(ctx context.Context, sessionID uuid.UUID) error { return nil }
func (m *MockStore) GetLatestResult(ctx context.Context, sessionID uuid.UUID) (*store.Result, error) {
	return nil, nil
}
func (m *MockStore) GetStats(ctx context.Context) (*store.Stats, error) { return nil, nil }
func (m *MockStore) Close() error                                       { return nil }

type stubProvider struct {
	score float64
	err   error
}

func (p stubProvider) Score(ctx context.Context, lat, lng float64) (float64, error) {
	return p.score, p.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSession() *store.Session {
	refLat, refLng := 52.5200, 13.4050
	return &store.Session{
		ID:       uuid.New(),
		ClientID: "client-1",
		Name:     "flat hunt",
		Status:   store.StatusActive,
		RefLat:   &refLat,
		RefLng:   &refLng,
	}
}

func testProperties(sessionID uuid.UUID) []*store.Property {
	lat, lng := 52.5163, 13.3777
	return []*store.Property{
		{
			ID:        uuid.New(),
			SessionID: sessionID,
			Title:     "cheap flat near the office",
			PriceText: "€1.000",
			Lat:       &lat,
			Lng:       &lng,
			Attrs:     map[string]interface{}{"neighborhood": 8.0, "size": 7.0},
		},
		{
			ID:        uuid.New(),
			SessionID: sessionID,
			Title:     "pricey flat, no coordinates",
			PriceText: "€2.000",
		},
	}
}

func TestRunPersistsScoresAndResult(t *testing.T) {
	session := testSession()
	properties := testProperties(session.ID)

	ms := new(MockStore)
	ms.On("ListProperties", mock.Anything, session.ID).Return(properties, nil)
	ms.On("ListComparisons", mock.Anything, session.ID).Return([]*store.Comparison{
		{SessionID: session.ID, CriterionA: "price", CriterionB: "location", Value: -4},
	}, nil)

	persisted := map[uuid.UUID]*ahp.CriteriaScores{}
	ms.On("UpdatePropertyScores", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted[args.Get(1).(uuid.UUID)] = args.Get(2).(*ahp.CriteriaScores)
		}).Return(nil)
	ms.On("CreateResult", mock.Anything, mock.Anything).Return(nil)

	runner := NewRunner(ms, nil, nil, nil, ahp.MethodGeometricMean, 100, testLogger())
	result, err := runner.Run(context.Background(), session, ahp.MethodGeometricMean)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.PropertyCount)
	assert.Equal(t, "geometric_mean", result.Method)
	assert.True(t, result.IsConsistent)
	assert.False(t, result.ComputedAt.IsZero())

	// cheaper and closer property wins under a price-heavy judgment
	assert.Equal(t, properties[0].ID.String(), result.Rankings[0].PropertyID)

	cheap := persisted[properties[0].ID]
	if assert.NotNil(t, cheap) {
		assert.Equal(t, 10.0, cheap.Price)
		assert.Equal(t, 8.0, cheap.Location) // ~1.9km from reference, neighborhood 8
		assert.Equal(t, 7.0, cheap.Size)
		assert.Equal(t, 5.0, cheap.AirQuality) // no provider configured
	}
	pricey := persisted[properties[1].ID]
	if assert.NotNil(t, pricey) {
		assert.Equal(t, 1.0, pricey.Price)
		assert.Equal(t, 5.0, pricey.Location) // no coordinates
	}

	ms.AssertExpectations(t)
}

func TestRunResolvesAirQuality(t *testing.T) {
	session := testSession()
	properties := testProperties(session.ID)

	ms := new(MockStore)
	ms.On("ListProperties", mock.Anything, session.ID).Return(properties, nil)
	ms.On("ListComparisons", mock.Anything, session.ID).Return([]*store.Comparison{}, nil)

	persisted := map[uuid.UUID]*ahp.CriteriaScores{}
	ms.On("UpdatePropertyScores", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted[args.Get(1).(uuid.UUID)] = args.Get(2).(*ahp.CriteriaScores)
		}).Return(nil)
	ms.On("CreateResult", mock.Anything, mock.Anything).Return(nil)

	runner := NewRunner(ms, stubProvider{score: 9}, nil, nil, ahp.MethodGeometricMean, 100, testLogger())
	_, err := runner.Run(context.Background(), session, ahp.MethodGeometricMean)

	assert.NoError(t, err)
	assert.Equal(t, 9.0, persisted[properties[0].ID].AirQuality)
	// property without coordinates never hits the provider
	assert.Equal(t, 5.0, persisted[properties[1].ID].AirQuality)
}

func TestRunProviderFailureUsesDefault(t *testing.T) {
	session := testSession()
	properties := testProperties(session.ID)

	ms := new(MockStore)
	ms.On("ListProperties", mock.Anything, session.ID).Return(properties, nil)
	ms.On("ListComparisons", mock.Anything, session.ID).Return([]*store.Comparison{}, nil)

	persisted := map[uuid.UUID]*ahp.CriteriaScores{}
	ms.On("UpdatePropertyScores", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted[args.Get(1).(uuid.UUID)] = args.Get(2).(*ahp.CriteriaScores)
		}).Return(nil)
	ms.On("CreateResult", mock.Anything, mock.Anything).Return(nil)

	runner := NewRunner(ms, stubProvider{err: errors.New("upstream down")}, nil, nil, ahp.MethodGeometricMean, 100, testLogger())
	result, err := runner.Run(context.Background(), session, ahp.MethodGeometricMean)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.PropertyCount)
	assert.Equal(t, 5.0, persisted[properties[0].ID].AirQuality)
}

func TestRunPropagatesStoreErrors(t *testing.T) {
	session := testSession()

	ms := new(MockStore)
	ms.On("ListProperties", mock.Anything, session.ID).Return(nil, errors.New("connection refused"))

	runner := NewRunner(ms, nil, nil, nil, ahp.MethodGeometricMean, 100, testLogger())
	_, err := runner.Run(context.Background(), session, ahp.MethodGeometricMean)

	assert.Error(t, err)
}

func TestResolveMethod(t *testing.T) {
	runner := NewRunner(new(MockStore), nil, nil, nil, ahp.MethodGeometricMean, 100, testLogger())

	tests := []struct {
		name      string
		session   *store.Session
		requested string
		want      ahp.Method
		wantErr   bool
	}{
		{"request override wins", &store.Session{WeightMethod: "geometric_mean"}, "power_iteration", ahp.MethodPowerIteration, false},
		{"session preference", &store.Session{WeightMethod: "power_iteration"}, "", ahp.MethodPowerIteration, false},
		{"configured default", &store.Session{}, "", ahp.MethodGeometricMean, false},
		{"unknown request rejected", &store.Session{}, "eigen_decomposition", "", true},
		{"unknown session preference rejected", &store.Session{WeightMethod: "bogus"}, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runner.ResolveMethod(tt.session, tt.requested)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
