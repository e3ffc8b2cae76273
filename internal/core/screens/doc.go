// Package screens registers all screen definitions with the core registry.
// Import this package for its side effects to make the screens available.
//
// Each file covers one domain area and registers its screens from init().
// Screens with the same resource in different role namespaces share their
// column and field sets.
package screens
