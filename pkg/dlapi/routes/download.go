package routes

import (
	"context"
	"net/http"

	"github.com/airenamify/dlgate/pkg/resolve"
	"github.com/danielgtaylor/huma/v2"
)

const textPlain = "text/plain; charset=utf-8"

// DownloadInput defines the input for the download redirect
type DownloadInput struct {
	OS   string `query:"os" doc:"Target platform: mac for .dmg, anything else for .exe" example:"mac"`
	Arch string `query:"arch" doc:"CPU architecture, matched case-insensitively against the file name" example:"arm64"`
}

// DownloadOutput is either a redirect or a plain-text diagnostic
type DownloadOutput struct {
	Status      int
	Location    string `header:"Location" doc:"CDN URL of the chosen installer"`
	ContentType string `header:"Content-Type"`
	Body        []byte
}

func textResponse(status int, msg string) *DownloadOutput {
	return &DownloadOutput{
		Status:      status,
		ContentType: textPlain,
		Body:        []byte(msg),
	}
}

// RegisterDownload registers the installer redirect route
func RegisterDownload(api huma.API, resolver *resolve.Resolver) {
	huma.Register(api, huma.Operation{
		OperationID:   "download",
		Method:        http.MethodGet,
		Path:          DownloadPath,
		Summary:       "Download the latest installer",
		Description:   "Redirects to the newest installer for the requested platform and architecture. The release manifest is consulted first; the bucket listing is the fallback.",
		Tags:          []string{TagDownload.String()},
		DefaultStatus: http.StatusFound,
		Responses: map[string]*huma.Response{
			"302": {Description: "Redirect to the installer on the CDN"},
			"400": {Description: "Missing os parameter"},
			"404": {Description: "No matching installer"},
			"500": {Description: "Release listing failed"},
		},
	}, func(ctx context.Context, input *DownloadInput) (*DownloadOutput, error) {
		if input.OS == "" {
			return textResponse(http.StatusBadRequest, MissingOSMessage), nil
		}
		if resolver == nil {
			return textResponse(http.StatusServiceUnavailable, "release storage not configured"), nil
		}

		res, err := resolver.Resolve(ctx, resolve.Query{OS: input.OS, Arch: input.Arch})
		if err != nil {
			return textResponse(errorStatus(err)), nil
		}

		return &DownloadOutput{
			Status:   http.StatusFound,
			Location: res.URL,
		}, nil
	})
}
