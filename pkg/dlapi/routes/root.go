package routes

import (
	"github.com/airenamify/dlgate/pkg/dlapi/services"
	"github.com/danielgtaylor/huma/v2"
)

func RegisterAPI(api huma.API, svcs *services.Services) {
	if svcs == nil {
		svcs = services.EmptyServices()
	}
	RegisterHealth(api)
	RegisterDownload(api, svcs.Resolver)
	RegisterReleases(api, svcs.Resolver)
}
