// Package lastfm fetches global charts from the Last.fm API.
package lastfm
