// Package instagram fetches hashtag trends through a RapidAPI-hosted
// Instagram endpoint, authenticated with the shared RapidAPI key
// headers.
package instagram
