// Package app provides the main Bubble Tea application model for layoutgen.
//
// It manages the UI state machine, handles user input, and coordinates the
// generator, the renderer and the exporters. The states cover the prompt
// form, the running generation, the rendered result, the component library
// browser and help.
//
// The main type is Model, which implements the Bubble Tea interface
// (Init, Update, View) and manages all application state.
package app
