package constants

import "time"

var CacheTTL = struct {
	GameRecord time.Duration
	DealList   time.Duration
	MatchLocal time.Duration
}{
	GameRecord: 6 * time.Hour,   // resolved game identity by normalized title
	DealList:   5 * time.Minute, // shop offers churn quickly
	MatchLocal: 5 * time.Minute, // in-process resolver front cache
}

var APIConfig = struct {
	ITADBaseURL    string
	RequestTimeout time.Duration
	SearchResults  int
	MatchThreshold float64
}{
	ITADBaseURL:    "https://api.isthereanydeal.com",
	RequestTimeout: 20 * time.Second,
	SearchResults:  5,
	MatchThreshold: 0.5,
}

var RedisConfig = struct {
	ReadyTimeout time.Duration
}{
	ReadyTimeout: 5 * time.Second,
}

var CleanupConfig = struct {
	Interval    time.Duration
	PageSize    int
	Concurrency int
}{
	Interval:    1 * time.Minute,
	PageSize:    100,
	Concurrency: 4,
}

var Limits = struct {
	MaxDeals       int
	MaxQueryLength int
	GameTitle      int
}{
	MaxDeals:       5,
	MaxQueryLength: 200,
	GameTitle:      80,
}
