// Package gtrends fetches Google Trends daily searches from a local
// scraping server. Google has no official trends API, so deployments
// run a small companion service that scrapes the daily trends feed;
// this client only needs its base URL.
package gtrends
