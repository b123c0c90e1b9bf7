package services

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-description-generator/internal/client"
	"github.com/justsurfingit/job-description-generator/internal/database"
	"github.com/justsurfingit/job-description-generator/internal/dtos"
)

type fakeGenerator struct {
	calls   atomic.Int32
	resp    *dtos.GenerateResponse
	err     error
	release chan struct{}
	ctxErr  error
}

func (f *fakeGenerator) Generate(ctx context.Context, _ dtos.JobInput) (*dtos.GenerateResponse, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	f.ctxErr = ctx.Err()
	return f.resp, f.err
}

func generated(text string) *dtos.GenerateResponse {
	return &dtos.GenerateResponse{
		Success:        true,
		JobDescription: text,
		JobDetails:     &dtos.JobDetails{Title: "Backend Engineer", Company: "Acme Corp"},
		Metadata:       &dtos.Metadata{WordCount: 42},
	}
}

func newFormService(gen Generator) *FormService {
	return NewFormService(gen, NewJobService(database.NewMemoryStore()))
}

func TestSubmit_ValidationNeverCallsGenerator(t *testing.T) {
	gen := &fakeGenerator{resp: generated("x")}
	svc := newFormService(gen)

	in := form
	in.CompanyName = ""
	in.SkillsKnown = "   "
	in.Degree = ""

	outcome, err := svc.Submit(context.Background(), in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"companyName", "degree", "skillsKnown"}, verr.Missing)
	assert.Equal(t, StateIdle, outcome.State)
	assert.Equal(t, []dtos.Toast{{Kind: ToastError, Message: "Please fill in all required fields"}}, outcome.Toasts)
	assert.Zero(t, gen.calls.Load())
}

func TestSubmit_SalaryIsOptionalForTheForm(t *testing.T) {
	svc := newFormService(&fakeGenerator{})
	in := form
	in.Salary = ""
	in.AdditionalDetails = ""
	assert.NoError(t, svc.Validate(in))
}

func TestSubmit_Success(t *testing.T) {
	gen := &fakeGenerator{resp: generated("**Job Overview**\nBuild things.")}
	svc := newFormService(gen)

	outcome, err := svc.Submit(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, StateResult, outcome.State)
	assert.Equal(t, []dtos.Toast{{Kind: ToastSuccess, Message: "Job description generated successfully!"}}, outcome.Toasts)
	require.NotNil(t, outcome.Description)
	assert.False(t, outcome.Description.Fallback)
	assert.Equal(t, "Backend Engineer", outcome.Description.Details.Title)
	assert.Equal(t, 42, outcome.Description.WordCount)
	assert.EqualValues(t, 1, gen.calls.Load())

	stored, err := svc.Get(context.Background(), outcome.Description.ID)
	require.NoError(t, err)
	assert.Equal(t, "**Job Overview**\nBuild things.", stored.Description)
	assert.Equal(t, form, stored.Input)
}

func TestSubmit_DerivesDetailsWhenGeneratorOmitsThem(t *testing.T) {
	gen := &fakeGenerator{resp: &dtos.GenerateResponse{Success: true, JobDescription: "one two three"}}

	outcome, err := newFormService(gen).Submit(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, "Austin, Texas", outcome.Description.Details.Location)
	assert.Equal(t, 3, outcome.Description.WordCount)
}

func TestSubmit_UnreachableGeneratorFallsBack(t *testing.T) {
	for _, kind := range []client.ErrorKind{client.KindNetwork, client.KindServer} {
		t.Run(string(kind), func(t *testing.T) {
			gen := &fakeGenerator{err: &client.Error{Kind: kind, Message: "Server error - please try again in a moment."}}
			svc := newFormService(gen)

			outcome, err := svc.Submit(context.Background(), form)
			require.NoError(t, err)

			assert.Equal(t, StateError, outcome.State)
			assert.Equal(t, []dtos.Toast{
				{Kind: ToastError, Message: "Server error - please try again in a moment."},
				{Kind: ToastInfo, Message: "Generated a template for you to customize"},
			}, outcome.Toasts)

			require.NotNil(t, outcome.Description)
			assert.True(t, outcome.Description.Fallback)
			assert.Contains(t, outcome.Description.Description, "Please send your application to jobs@acme.com")
			assert.Equal(t, "Backend Engineer", outcome.Description.Details.Title)

			stored, err := svc.Get(context.Background(), outcome.Description.ID)
			require.NoError(t, err)
			assert.True(t, stored.Fallback)
		})
	}
}

func TestSubmit_ApplicationFailureHasNoFallback(t *testing.T) {
	gen := &fakeGenerator{err: &client.Error{Kind: client.KindApplication, Message: "Please fill in the salary field."}}

	outcome, err := newFormService(gen).Submit(context.Background(), form)

	var ce *client.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, StateError, outcome.State)
	assert.Nil(t, outcome.Description)
	assert.Equal(t, []dtos.Toast{{Kind: ToastError, Message: "Please fill in the salary field."}}, outcome.Toasts)
}

func TestSubmit_IgnoresCallerCancellation(t *testing.T) {
	gen := &fakeGenerator{resp: generated("text")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := newFormService(gen).Submit(ctx, form)
	require.NoError(t, err)

	assert.Equal(t, StateResult, outcome.State)
	assert.NoError(t, gen.ctxErr)
}

func TestSubmit_IdenticalConcurrentSubmissionsShareOneCall(t *testing.T) {
	gen := &fakeGenerator{resp: generated("shared"), release: make(chan struct{})}
	svc := newFormService(gen)

	const n = 5
	var wg sync.WaitGroup
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcome, err := svc.Submit(context.Background(), form)
			if assert.NoError(t, err) {
				ids[i] = outcome.Description.ID
			}
		}(i)
	}

	require.Eventually(t, func() bool { return gen.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(gen.release)
	wg.Wait()

	assert.EqualValues(t, 1, gen.calls.Load())
	seen := map[string]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	assert.Len(t, seen, n, "each submission gets its own record")
}

func TestRegenerate_ReplacesUnderSameID(t *testing.T) {
	gen := &fakeGenerator{resp: generated("first")}
	svc := newFormService(gen)

	first, err := svc.Submit(context.Background(), form)
	require.NoError(t, err)
	id := first.Description.ID

	gen.resp = generated("second")
	again, err := svc.Regenerate(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, again.Description.ID)
	stored, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "second", stored.Description)
	assert.Equal(t, first.Description.CreatedAt, stored.CreatedAt)
	assert.EqualValues(t, 2, gen.calls.Load())
}

func TestRegenerate_NetworkFailureKeepsGeneratedText(t *testing.T) {
	gen := &fakeGenerator{resp: generated("**Job Overview**\nReal text.")}
	svc := newFormService(gen)

	first, err := svc.Submit(context.Background(), form)
	require.NoError(t, err)
	id := first.Description.ID

	gen.resp = nil
	gen.err = &client.Error{Kind: client.KindNetwork, Message: "Network error - please check your connection and try again."}
	outcome, err := svc.Regenerate(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, StateError, outcome.State)
	assert.Equal(t, []dtos.Toast{{Kind: ToastError, Message: "Network error - please check your connection and try again."}}, outcome.Toasts)
	require.NotNil(t, outcome.Description)
	assert.False(t, outcome.Description.Fallback)
	assert.Equal(t, "**Job Overview**\nReal text.", outcome.Description.Description)

	stored, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, stored.Fallback)
	assert.Equal(t, "**Job Overview**\nReal text.", stored.Description)
}

func TestRegenerate_FallbackRecordIsRefreshedOnFailure(t *testing.T) {
	gen := &fakeGenerator{err: &client.Error{Kind: client.KindServer, Message: "Server error - please try again in a moment."}}
	svc := newFormService(gen)

	first, err := svc.Submit(context.Background(), form)
	require.NoError(t, err)
	require.True(t, first.Description.Fallback)

	outcome, err := svc.Regenerate(context.Background(), first.Description.ID)
	require.NoError(t, err)

	assert.True(t, outcome.Description.Fallback)
	assert.Len(t, outcome.Toasts, 2)
}

func TestRegenerate_UnknownID(t *testing.T) {
	_, err := newFormService(&fakeGenerator{}).Regenerate(context.Background(), "missing")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRenderedPage(t *testing.T) {
	gen := &fakeGenerator{resp: generated("**Job Overview**\nBuild things.")}
	outcome, err := newFormService(gen).Submit(context.Background(), form)
	require.NoError(t, err)

	page, err := RenderedPage(outcome.Description)
	require.NoError(t, err)
	assert.Contains(t, page, "Backend Engineer")
	assert.Contains(t, page, "Build things.")
	assert.Contains(t, RenderedBody(outcome.Description), `<h3 class="jd-heading">Job Overview</h3>`)
	assert.Contains(t, page, "Apply Now")
}

func TestRenderedPage_FallbackHasNoApplyCard(t *testing.T) {
	gen := &fakeGenerator{err: &client.Error{Kind: client.KindNetwork, Message: "Network error"}}
	outcome, err := newFormService(gen).Submit(context.Background(), form)
	require.NoError(t, err)

	page, err := RenderedPage(outcome.Description)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(page, "How to Apply"))
	assert.NotContains(t, page, "Apply Now")
}
