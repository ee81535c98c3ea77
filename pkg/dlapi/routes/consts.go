package routes

type Tag string

const (
	TagDownload Tag = "Download"
	TagReleases Tag = "Releases"
	TagGeneral  Tag = "General"
)

func (t Tag) String() string { return string(t) }

const (
	DownloadPath      = "/download"
	LatestReleasePath = "/api/releases/latest"
	HealthPath        = "/health"
)

// MissingOSMessage is the client error for a request without "os".
const MissingOSMessage = `Missing "os" parameter (mac or win)`
