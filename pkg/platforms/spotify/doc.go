// Package spotify fetches chart playlists from the Spotify Web API.
//
// The client reads editorial chart playlists (Viral 50, Top 50) and
// normalizes their tracks into trend candidates weighted by Spotify's
// popularity index. Requests require a bearer token; token acquisition
// is the caller's concern.
package spotify
