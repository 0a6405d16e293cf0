// Package webview hosts a wave field on ebiten. The same Game runs as a
// desktop window or, built with GOOS=js GOARCH=wasm, inside a browser
// canvas. Drawing goes through the loop driver like every other host.
package webview
