// Package core provides the business logic of the accreditation console.
//
// This package sits between the marketplace API client and the web layer. It
// holds no HTTP handlers and no rendering, so it can be used by web handlers,
// the consolectl CLI, or tests without modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Screen Definitions: Registered via the registry, each screen names its
//     API resource, table columns, filters, form fields and capabilities.
//   - Service: The main entry point for all operations (load, detail, create,
//     update, delete, approve, reject).
//   - Forms: Field specs drive validation and conversion into API payloads.
//   - Audit: Every mutation made through the console is recorded.
//
// # Screen Registry
//
// Screens are registered at init time using [Register]. Each [ScreenDefinition]
// contains everything needed to list and operate one resource:
//
//	core.Register(core.ScreenDefinition{
//	    Info: core.ScreenInfo{
//	        Key: "admin_courses", Group: "Admin", Label: "Courses",
//	        Namespace: api.NamespaceAdmin, Resource: "courses",
//	    },
//	    Columns: []datatable.Column{{Header: "Name", Accessor: "name"}},
//	    Fields:  []core.FieldSpec{{Name: "name", Required: true}},
//	    Can:     core.Capabilities{View: true, Create: true, Edit: true},
//	})
//
// # Loading
//
// [Service.LoadScreen] fetches one large page of a collection and attaches
// the precomputed search text. A failed list call is not an error: the screen
// renders its empty state and the failure is logged.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - API001-API008: Marketplace API errors (network, auth, validation)
//   - FORM001-FORM006: Form validation errors
//   - SCR001-SCR003: Screen and row lookup errors
//   - RATE001-RATE002: Rate limiting and export concurrency
//
// # Audit Logging
//
// All mutations are recorded in the audit store with severity levels:
//
//   - Low: Creates
//   - Medium: Updates, approvals
//   - High: Deletions, rejections
//
// Old audit entries are purged by [Service.StartRetentionScheduler] based on
// the configured retention policy.
package core
