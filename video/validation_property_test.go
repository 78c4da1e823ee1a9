package video

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/BaSui01/runwayflow"
)

// 属性：任意不属于 {5, 10} 的时长在任何文件与网络 I/O 之前被拒绝。
func TestProperty_InvalidDurationRejectedBeforeIO(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		duration := rapid.IntRange(-100, 100).
			Filter(func(d int) bool { return d != 0 && d != 5 && d != 10 }).
			Draw(t, "duration")

		fake := &fakeRequester{}
		g := newTestGenerator(fake, Config{})

		_, err := g.CreateVideoTask(context.Background(), TaskRequest{
			ImagePath:  "/nonexistent/image.png",
			PromptText: "motion",
			Duration:   duration,
		})
		assert.True(t, runwayflow.IsCode(err, runwayflow.ErrValidation))
		assert.Empty(t, fake.calls)
	})
}

// 属性：任意不属于固定六元集合的宽高比同样在 I/O 之前被拒绝。
func TestProperty_InvalidRatioRejectedBeforeIO(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ratio := rapid.StringMatching(`[0-9]{2,4}:[0-9]{2,4}`).
			Filter(func(r string) bool { return !isValidRatio(r) }).
			Draw(t, "ratio")

		fake := &fakeRequester{}
		g := newTestGenerator(fake, Config{})

		_, err := g.CreateVideoTask(context.Background(), TaskRequest{
			ImagePath:  "/nonexistent/image.png",
			PromptText: "motion",
			Ratio:      ratio,
		})
		assert.True(t, runwayflow.IsCode(err, runwayflow.ErrValidation))
		assert.Empty(t, fake.calls)
	})
}

// 属性：合法的 (时长, 宽高比) 组合全部通过校验并到达传输层。
func TestProperty_ValidParameterCombinationsAccepted(t *testing.T) {
	path := writeTempImage(t, "frame.png", []byte("png-bytes"))

	rapid.Check(t, func(t *rapid.T) {
		duration := rapid.SampledFrom(ValidDurations()).Draw(t, "duration")
		ratio := rapid.SampledFrom(ValidRatios()).Draw(t, "ratio")

		fake := &fakeRequester{}
		g := newTestGenerator(fake, Config{})

		_, err := g.CreateVideoTask(context.Background(), TaskRequest{
			ImagePath:  path,
			PromptText: "motion",
			Duration:   duration,
			Ratio:      ratio,
		})
		assert.NoError(t, err)
		assert.Len(t, fake.calls, 1)
		assert.Equal(t, duration, fake.calls[0].payload["duration"])
		assert.Equal(t, ratio, fake.calls[0].payload["ratio"])
	})
}
