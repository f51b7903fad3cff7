package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/careercompass/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttemptRepo struct {
	attempts []model.TestAttempt
	err      error
}

func (f *fakeAttemptRepo) Create(attempt *model.TestAttempt) error { return f.err }

func (f *fakeAttemptRepo) FindAllByUser(userID uint) ([]model.TestAttempt, error) {
	return f.attempts, f.err
}

type fakeRecRepo struct {
	recs  []model.CareerRecommendation
	paths []model.LearningPath
	gaps  []model.SkillGap

	mu           sync.Mutex
	createdRecs  []model.CareerRecommendation
	createdPaths []model.LearningPath
	createErr    error
	createCalls  int
}

func (f *fakeRecRepo) CreateAll(recs []model.CareerRecommendation, paths []model.LearningPath) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.createdRecs = recs
	f.createdPaths = paths
	return nil
}

func (f *fakeRecRepo) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls
}

func (f *fakeRecRepo) FindRecommendationsByUser(userID uint) ([]model.CareerRecommendation, error) {
	return f.recs, nil
}

func (f *fakeRecRepo) FindSkillGapsByUser(userID uint) ([]model.SkillGap, error) {
	return f.gaps, nil
}

func (f *fakeRecRepo) FindLearningPathsByUser(userID uint) ([]model.LearningPath, error) {
	return f.paths, nil
}

type mockAdvisor struct {
	advice *CareerAdvice
	err    error
	calls  int
}

func (m *mockAdvisor) RecommendCareers(ctx context.Context, summary PerformanceSummary) (*CareerAdvice, error) {
	m.calls++
	return m.advice, m.err
}

func completedAttempts(n int) []model.TestAttempt {
	attempts := make([]model.TestAttempt, 0, n)
	for i := 0; i < n; i++ {
		attempts = append(attempts, model.TestAttempt{
			Test:       model.Test{Title: "Logical Reasoning", Category: model.CategoryAnalytical},
			Percentage: 75,
		})
	}
	return attempts
}

func validAdvice() *CareerAdvice {
	advice := &CareerAdvice{}
	for i := 0; i < CareerCount; i++ {
		advice.Careers = append(advice.Careers, RecommendedCareer{
			CareerTitle:     "Data Analyst",
			Description:     "Analyzes datasets",
			ConfidenceScore: 85,
			RequiredSkills:  []string{"SQL", "Statistics"},
			SalaryRange:     "$60,000 - $95,000",
			GrowthPotential: model.GrowthHigh,
			SkillGaps: []RecommendedSkillGap{{
				SkillName:     "SQL",
				CurrentLevel:  4,
				RequiredLevel: 7,
				Priority:      "high",
			}},
			LearningPaths: []RecommendedResource{{
				ResourceTitle: "SQL for Data Analysis",
				ResourceType:  "course",
				Provider:      "Coursera",
			}},
		})
	}
	return advice
}

func newServiceForTest(attemptRepo *fakeAttemptRepo, recRepo *fakeRecRepo, advisor CareerAdvisor) RecommendationService {
	return NewRecommendationService(attemptRepo, recRepo, advisor, time.Second)
}

func TestGenerate_RequiresTwoAttempts(t *testing.T) {
	advisor := &mockAdvisor{advice: validAdvice()}
	recRepo := &fakeRecRepo{}
	svc := newServiceForTest(&fakeAttemptRepo{attempts: completedAttempts(1)}, recRepo, advisor)

	_, err := svc.Generate(context.Background(), 1)

	require.ErrorIs(t, err, ErrInsufficientAttempts)
	assert.Zero(t, advisor.calls, "the advisor must not be called below the attempt threshold")
	assert.Zero(t, recRepo.createCalls, "no rows may be written below the attempt threshold")
}

func TestGenerate_AdvisorFailureWritesNothing(t *testing.T) {
	advisor := &mockAdvisor{err: errors.New("model unavailable")}
	recRepo := &fakeRecRepo{}
	svc := newServiceForTest(&fakeAttemptRepo{attempts: completedAttempts(3)}, recRepo, advisor)

	_, err := svc.Generate(context.Background(), 1)

	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Zero(t, recRepo.createCalls, "a failed generation must not persist partial rows")
}

func TestGenerate_PersistsFullRecommendationSet(t *testing.T) {
	advisor := &mockAdvisor{advice: validAdvice()}
	recRepo := &fakeRecRepo{}
	svc := newServiceForTest(&fakeAttemptRepo{attempts: completedAttempts(2)}, recRepo, advisor)

	result, err := svc.Generate(context.Background(), 42)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, CareerCount, result.CareersGenerated)
	assert.Equal(t, CareerCount, result.SkillGapsFound)
	assert.Equal(t, CareerCount, result.LearningResources)

	require.Len(t, recRepo.createdRecs, CareerCount)
	rec := recRepo.createdRecs[0]
	assert.Equal(t, uint(42), rec.UserID)
	assert.Equal(t, "Data Analyst", rec.CareerTitle)
	assert.Equal(t, model.GrowthHigh, rec.GrowthPotential)

	var skills []string
	require.NoError(t, json.Unmarshal(rec.RequiredSkills, &skills))
	assert.Equal(t, []string{"SQL", "Statistics"}, skills)

	require.Len(t, rec.SkillGaps, 1)
	assert.Equal(t, uint(42), rec.SkillGaps[0].UserID)
	assert.Equal(t, "SQL", rec.SkillGaps[0].SkillName)

	require.Len(t, recRepo.createdPaths, CareerCount)
	assert.Equal(t, uint(42), recRepo.createdPaths[0].UserID)
}

// overlapAdvisor flags any concurrent entry into RecommendCareers.
type overlapAdvisor struct {
	advice     *CareerAdvice
	inFlight   int32
	overlapped int32
	calls      int32
}

func (a *overlapAdvisor) RecommendCareers(ctx context.Context, summary PerformanceSummary) (*CareerAdvice, error) {
	if atomic.AddInt32(&a.inFlight, 1) > 1 {
		atomic.StoreInt32(&a.overlapped, 1)
	}
	time.Sleep(5 * time.Millisecond)
	atomic.AddInt32(&a.inFlight, -1)
	atomic.AddInt32(&a.calls, 1)
	return a.advice, nil
}

func TestGenerate_ConcurrentCallsForOneUserSerialize(t *testing.T) {
	advisor := &overlapAdvisor{advice: validAdvice()}
	recRepo := &fakeRecRepo{}
	svc := newServiceForTest(&fakeAttemptRepo{attempts: completedAttempts(2)}, recRepo, advisor)

	const callers = 4
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Generate(context.Background(), 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Zero(t, atomic.LoadInt32(&advisor.overlapped), "the advisor must never be entered concurrently for one user")
	assert.Equal(t, int32(callers), atomic.LoadInt32(&advisor.calls))
	assert.Equal(t, callers, recRepo.calls(), "each serialized call persists its own set")
}

func TestGenerate_PersistFailureSurfaces(t *testing.T) {
	advisor := &mockAdvisor{advice: validAdvice()}
	recRepo := &fakeRecRepo{createErr: errors.New("constraint violation")}
	svc := newServiceForTest(&fakeAttemptRepo{attempts: completedAttempts(2)}, recRepo, advisor)

	_, err := svc.Generate(context.Background(), 1)
	assert.Error(t, err)
}

func TestGenerate_AttemptRepoFailure(t *testing.T) {
	advisor := &mockAdvisor{advice: validAdvice()}
	svc := newServiceForTest(&fakeAttemptRepo{err: errors.New("connection refused")}, &fakeRecRepo{}, advisor)

	_, err := svc.Generate(context.Background(), 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInsufficientAttempts)
}

func TestSummarizePerformance(t *testing.T) {
	attempts := []model.TestAttempt{
		{Test: model.Test{Title: "Logical Reasoning", Category: model.CategoryAnalytical}, Percentage: 80},
		{Test: model.Test{Title: "Programming Basics", Category: model.CategoryTechnical}, Percentage: 60},
	}

	summary := summarizePerformance(attempts)

	require.Len(t, summary.Lines, 2)
	assert.Equal(t, "Logical Reasoning (analytical): 80.0%", summary.Lines[0])
	assert.Equal(t, "Programming Basics (technical): 60.0%", summary.Lines[1])
	assert.InDelta(t, 70.0, summary.AverageScore, 0.001)
}

func TestGetRecommendations_DecodesRequiredSkills(t *testing.T) {
	skills, err := json.Marshal([]string{"Go", "SQL"})
	require.NoError(t, err)

	recRepo := &fakeRecRepo{recs: []model.CareerRecommendation{{
		CareerTitle:     "Backend Engineer",
		ConfidenceScore: 90,
		RequiredSkills:  skills,
		GrowthPotential: model.GrowthVeryHigh,
	}}}
	svc := newServiceForTest(&fakeAttemptRepo{}, recRepo, &mockAdvisor{})

	dtos, err := svc.GetRecommendations(7)
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, []string{"Go", "SQL"}, dtos[0].RequiredSkills)
	assert.Equal(t, "Very High", dtos[0].GrowthPotential)
}
