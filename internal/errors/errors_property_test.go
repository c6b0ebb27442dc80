//go:build property

package errors

import (
	"fmt"
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestWarningCollectorProperties validates warning collection under concurrency
func TestWarningCollectorProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(2468)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: Warnings from concurrent jobs are never lost
	properties.Property("concurrent warnings are all collected", prop.ForAll(
		func(goroutineCount int, warningsPerGoroutine int) bool {
			collector := NewWarningCollector()

			var wg sync.WaitGroup
			for g := 0; g < goroutineCount; g++ {
				wg.Add(1)
				go func(id int) {
					defer wg.Done()
					for w := 0; w < warningsPerGoroutine; w++ {
						collector.Warn(Warning{
							Code:    WarnUnknownCondition,
							Subject: fmt.Sprintf("file_%d_%d.tsx", id, w),
							Message: "skipped",
						})
					}
				}(g)
			}
			wg.Wait()

			return len(collector.Warnings()) == goroutineCount*warningsPerGoroutine
		},
		gen.IntRange(1, 20),
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t)
}

// TestWrapProperties validates that wrapping keeps location details
func TestWrapProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: Wrapping never loses the path or line of the inner error
	properties.Property("wrap preserves location", prop.ForAll(
		func(path string, line int, depth int) bool {
			var err error = NewMalformedConfigError(ErrCodeManifestInvalid, "bad").WithPath(path).WithLine(line)
			for i := 0; i < depth; i++ {
				err = WrapConfig(err, ErrCodeManifestInvalid, fmt.Sprintf("layer %d", i))
			}
			se, ok := err.(*StencilError)
			return ok && se.Path == path && se.Line == line && IsMalformedConfig(err)
		},
		gen.RegexMatch(`^[a-z/]{1,20}\.conf$`),
		gen.IntRange(1, 500),
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t)
}
