// Package youtube fetches trending videos from the YouTube Data API v3.
package youtube
