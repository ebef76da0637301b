package endpoints

import (
	"github.com/lumio-ai/benchdash/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},

		// Pages
		&HomeEndpoint{},

		// Extraction endpoints
		&ExtractionEndpoint{},
		&SelectProviderEndpoint{},
		&SessionEndpoint{},
		&SubmitEndpoint{},

		// Report endpoints
		&ReportsEndpoint{},
		&ExportEndpoint{},
		&ReportEndpoint{},
		&ReportMarkdownEndpoint{},

		// Static files
		&StaticEndpoint{},
	}
}

// ReportCommands returns the endpoints whose commands are grouped under
// the "reports" subcommand.
func ReportCommands() []api.Endpoint {
	return []api.Endpoint{
		&ReportsEndpoint{},
		&ReportEndpoint{},
		&ReportMarkdownEndpoint{},
		&ExportEndpoint{},
	}
}

// TopLevelCommands returns the endpoints whose commands sit directly under
// "api".
func TopLevelCommands() []api.Endpoint {
	return []api.Endpoint{
		&ReadyEndpoint{},
		&ExtractionEndpoint{},
		&SelectProviderEndpoint{},
		&SubmitEndpoint{},
	}
}
