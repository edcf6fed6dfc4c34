package fetch

import (
	"net/url"
	"strings"
)

// Platform is a job board family with known page structure.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

type platformSpec struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var platforms = []platformSpec{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"myworkdayjobs.com", "workday.com"},
		content:  []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		platform: PlatformAshby,
		hosts:    []string{"ashbyhq.com"},
		content:  []string{"._descriptionText_", "[class*='descriptionText']", "main"},
		noise:    []string{"[class*='applicationForm']"},
	},
}

// noise common to every job board: application forms, EEO text and share widgets.
var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	".legal-disclosure",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board from a URL's host.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, p := range platforms {
		for _, h := range p.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return p.platform
			}
		}
	}
	return PlatformUnknown
}

func lookup(p Platform) (platformSpec, bool) {
	for _, spec := range platforms {
		if spec.platform == p {
			return spec, true
		}
	}
	return platformSpec{}, false
}

// ContentSelectors returns the selectors that locate the posting body on p.
func ContentSelectors(p Platform) []string {
	if spec, ok := lookup(p); ok {
		return append([]string(nil), spec.content...)
	}
	return JobPostingSelectors()
}

// NoiseSelectors returns the selectors stripped before extraction on p.
func NoiseSelectors(p Platform) []string {
	out := append([]string(nil), commonNoise...)
	if spec, ok := lookup(p); ok {
		out = append(out, spec.noise...)
	}
	return out
}
