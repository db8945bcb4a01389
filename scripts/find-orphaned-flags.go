package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
)

const runKeyPrefix = "nuzlocke:run:"

// Only the fields needed to tell a readable run from a corrupted one
type runData struct {
	ID    string          `json:"id"`
	Party json.RawMessage `json:"party"`
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for orphaned flag bitmaps and corrupted runs...")

	runs := make(map[string]bool)
	flagKeys := make(map[string][]string)
	var corruptedKeys []string

	iter := client.Scan(ctx, 0, runKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		rest := strings.TrimPrefix(key, runKeyPrefix)

		// nuzlocke:run:<id>:flags:<namespace>
		if runID, _, isFlags := strings.Cut(rest, ":flags:"); isFlags {
			flagKeys[runID] = append(flagKeys[runID], key)
			continue
		}

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var run runData
		if err := json.Unmarshal([]byte(data), &run); err != nil || run.ID != rest {
			fmt.Printf("✗ Corrupted run in %s\n", key)
			corruptedKeys = append(corruptedKeys, key)
			continue
		}
		runs[rest] = true
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	// Flags left behind by a delete that failed half way
	for runID, keys := range flagKeys {
		if runs[runID] {
			continue
		}
		for _, key := range keys {
			fmt.Printf("✗ Orphaned flags in %s\n", key)
			corruptedKeys = append(corruptedKeys, key)
		}
	}

	fmt.Printf("\nChecked %d runs, found %d bad entries\n", len(runs), len(corruptedKeys))

	if len(corruptedKeys) == 0 {
		fmt.Println("No orphaned or corrupted data found!")
		return
	}

	fmt.Print("\nDo you want to DELETE these entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range corruptedKeys {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
		} else {
			fmt.Printf("Deleted %s\n", key)
		}
	}
	fmt.Println("\nCleanup complete!")
}
