// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount is the number of fields registered in config.Default.
const DefinedFieldsCount = 16

// Stream server - the restreamer backend that serves the catalog and the HLS segments.
const (
	ServerAddress = "server.address"
)

// Catalog - shape and cadence of the catalog fetch.
const (
	CatalogSchema          = "catalog.schema"
	CatalogRefreshInterval = "catalog.refresh_interval"
)

// Playback - engine selection and behavior after a stream is attached.
const (
	Player         = "player.default"
	PlayerAutoplay = "player.autoplay"
)

// Navigation - persistence of the shareable stream location.
const (
	NavigationRemember = "navigation.remember"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive environment's styling and logic.
const (
	TUIItemSpacing       = "tui.item_spacing"
	TUIShowURLs          = "tui.show_urls"
	TUIInputPromptString = "tui.input_prompt"
	TUIFlash             = "tui.flash"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
