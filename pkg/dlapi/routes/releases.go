package routes

import (
	"context"
	"net/http"

	"github.com/airenamify/dlgate/pkg/resolve"
	"github.com/danielgtaylor/huma/v2"
)

// LatestReleaseInput defines the input for looking up the latest installer
type LatestReleaseInput struct {
	OS   string `query:"os" doc:"Target platform: mac for .dmg, anything else for .exe" example:"win"`
	Arch string `query:"arch" doc:"CPU architecture, matched case-insensitively against the file name" example:"x64"`
}

// LatestRelease describes the installer a download would redirect to
type LatestRelease struct {
	Platform string `json:"platform" doc:"Resolved platform (mac or win)" example:"mac"`
	Arch     string `json:"arch,omitempty" doc:"Requested architecture" example:"arm64"`
	Key      string `json:"key" doc:"Storage key" example:"release/App-1.3.0-mac-arm64.dmg"`
	URL      string `json:"url" doc:"CDN URL" example:"https://contents-cdn.airenamify.com/release/App-1.3.0-mac-arm64.dmg"`
	Source   string `json:"source" enum:"manifest,listing" doc:"Strategy that chose the installer"`
}

// LatestReleaseOutput is the response for looking up the latest installer
type LatestReleaseOutput struct {
	Body LatestRelease
}

// RegisterReleases registers release lookup routes
func RegisterReleases(api huma.API, resolver *resolve.Resolver) {
	huma.Register(api, huma.Operation{
		OperationID: "get-latest-release",
		Method:      http.MethodGet,
		Path:        LatestReleasePath,
		Summary:     "Get the latest installer",
		Description: "Resolves the installer the download route would redirect to, without redirecting",
		Tags:        []string{TagReleases.String()},
	}, func(ctx context.Context, input *LatestReleaseInput) (*LatestReleaseOutput, error) {
		if input.OS == "" {
			return nil, huma.Error400BadRequest(MissingOSMessage)
		}
		if resolver == nil {
			return nil, huma.Error503ServiceUnavailable("release storage not configured")
		}

		res, err := resolver.Resolve(ctx, resolve.Query{OS: input.OS, Arch: input.Arch})
		if err != nil {
			return nil, toHumaError(err)
		}

		return &LatestReleaseOutput{Body: toLatestRelease(res)}, nil
	})
}

func toLatestRelease(res *resolve.Resolution) LatestRelease {
	return LatestRelease{
		Platform: res.Platform.String(),
		Arch:     res.Arch,
		Key:      res.Key,
		URL:      res.URL,
		Source:   string(res.Source),
	}
}
