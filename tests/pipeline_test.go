package tests

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/forkall/lamina/pkg/lamina"
	"github.com/forkall/lamina/pkg/lamina/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOrderScoringEndToEnd drives a realistic mixed pipeline: typed parsing,
// an asynchronous lookup, a read-merge against a second source, and a retry
// handler, with resumptions dispatched through a worker pool.
func TestOrderScoringEndToEnd(t *testing.T) {
	ctx := context.Background()

	pool := lamina.NewPool(4)
	defer pool.Close()

	// pretend remote rate lookup: resolves after a short delay
	fetchRate := func(code string) *lamina.Future[any] {
		fut := lamina.Create[any]()
		time.AfterFunc(5*time.Millisecond, func() {
			switch code {
			case "EU":
				fut.Succeed(2)
			case "US":
				fut.Succeed(3)
			default:
				fut.Fail(errors.New("unknown region: " + code))
			}
		})
		return fut
	}

	attempts := 0

	score := pipeline.New(
		pipeline.Try(func(_ context.Context, line string) (orderLine, error) {
			return parseOrderLine(line)
		}),
		func(ctx context.Context, v any) (any, error) {
			attempts++
			o := v.(orderLine)
			rate := fetchRate(o.region)
			return pipeline.ReadMerge(
				func(_ context.Context) (any, error) { return rate, nil },
				func(_ context.Context, acc, r any) (any, error) {
					o := acc.(orderLine)
					return o.qty * r.(int), nil
				},
			)(ctx, o)
		},
		pipeline.Map(func(_ context.Context, total int) int { return total + 1 }),
	).Via(pool)

	fut := score.Run(ctx, "EU:7")
	wctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	v, err := fut.Wait(wctx)
	require.NoError(t, err)
	assert.Equal(t, 7*2+1, v)
	assert.Equal(t, 1, attempts)
}

func TestRetryThenRedirectEndToEnd(t *testing.T) {
	ctx := context.Background()

	fallback := pipeline.New(
		pipeline.Map(func(_ context.Context, s string) string { return "fallback:" + s }),
	)

	failures := 0
	flaky := pipeline.New(
		func(_ context.Context, v any) (any, error) {
			if failures < 2 {
				failures++
				return nil, errors.New("transient")
			}
			return nil, errors.New("permanent")
		},
	).OnError(func(_ context.Context, cause error) (any, error) {
		if cause.Error() == "transient" {
			return pipeline.Restart(), nil
		}
		return pipeline.RedirectInitial(fallback), nil
	})

	fut := flaky.Run(ctx, "req-1")

	require.True(t, fut.IsResolved())
	require.NoError(t, fut.Err())
	assert.Equal(t, "fallback:req-1", fut.Value())
	assert.Equal(t, 2, failures)
}

func TestUnhandledFailureSurfacesOnFuture(t *testing.T) {
	ctx := context.Background()

	p := pipeline.New(
		pipeline.Try(func(_ context.Context, line string) (orderLine, error) {
			return parseOrderLine(line)
		}),
	)

	fut := p.Run(ctx, "garbage")

	require.True(t, fut.IsResolved())
	assert.False(t, fut.IsSuccess())
	assert.Error(t, fut.Err())
}

type orderLine struct {
	region string
	qty    int
}

func parseOrderLine(line string) (orderLine, error) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return orderLine{}, errors.New("malformed order line: " + line)
	}
	qty, err := strconv.Atoi(parts[1])
	if err != nil {
		return orderLine{}, err
	}
	return orderLine{region: parts[0], qty: qty}, nil
}
