package main

// General API documentation for swaggo. Run `swag init -g cmd/raind/docs.go -o docs` to regenerate.
//
// @title           raind API
// @version         1.0
// @description     Local model daemon: model discovery and lifecycle, conversational generation and retrieval of editor context.
//
// @contact.name   raind maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
