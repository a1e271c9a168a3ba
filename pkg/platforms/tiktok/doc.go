// Package tiktok fetches trending posts through a RapidAPI-hosted
// TikTok endpoint. TikTok has no public trends API, so the client talks
// to the marketplace host and authenticates with the shared RapidAPI
// key headers.
package tiktok
