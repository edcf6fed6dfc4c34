package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/123", PlatformWorkday},
		{"https://jobs.ashbyhq.com/acme/123", PlatformAshby},
		{"https://example.com/careers", PlatformUnknown},
		{"https://notgreenhouse.io.example.com/jobs", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestContentSelectors(t *testing.T) {
	assert.Equal(t, ".job__description.body", ContentSelectors(PlatformGreenhouse)[0])
	assert.Contains(t, ContentSelectors(PlatformLever), ".posting-description")
	assert.Equal(t, JobPostingSelectors(), ContentSelectors(PlatformUnknown))

	// callers may not mutate the table
	s := ContentSelectors(PlatformLever)
	s[0] = "changed"
	assert.NotEqual(t, "changed", ContentSelectors(PlatformLever)[0])
}

func TestNoiseSelectors(t *testing.T) {
	unknown := NoiseSelectors(PlatformUnknown)
	assert.Contains(t, unknown, "form")
	assert.Contains(t, unknown, ".eeo-statement")

	gh := NoiseSelectors(PlatformGreenhouse)
	assert.Greater(t, len(gh), len(unknown))
	assert.Contains(t, gh, "#usa_self_id_section")
}
