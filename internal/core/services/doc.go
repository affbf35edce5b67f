// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Classification itself lives in internal/classifier; services add the
// capture cycle, settings and backup around it.
package services
