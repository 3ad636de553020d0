// Package poll waits for an asynchronous condition with an exponentially
// growing delay between checks.
//
// It is used to watch Prism Central tasks. A failing check is never
// repeated: [Until] only checks again while the condition reports
// "not done yet", so an API error ends the wait at once.
package poll
