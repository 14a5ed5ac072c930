// internal/domain/models/appsettings.go
package models

// AppSettings holds the application-level settings stored in the document.
type AppSettings struct {
	AppName string `json:"app_name"`
	Version string `json:"version"`
}

// DefaultAppName is the application name used when settings are empty.
const DefaultAppName = "SmartFarm Pro"

// DefaultAppVersion is the version recorded in a freshly created document.
const DefaultAppVersion = "1.0.0"

// DefaultFooterHTML is the default footer text.
const DefaultFooterHTML = "Powered by SmartFarm Pro"
