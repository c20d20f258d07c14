// cmd/datacheck/main.go
// Package main implements an offline validator for a generated dataset
// directory. It is run against the builder's output before publishing:
// a dataset that passes here will never trip the runtime's
// degrade-to-absent paths because of a build bug.
//
// Checks:
//   - every lookup map entry points at the sha256-derived shard key
//   - every mapped id is present in its detail shard
//   - every detail shard record passes the record schema
//   - meta.total matches the lookup map size
//   - every listing page up to ceil(total/pageSize) exists
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/videostream/videostream-edge-go/internal/resolve"
	"github.com/videostream/videostream-edge-go/internal/schema"
)

type checker struct {
	dataDir   string
	validator *schema.Validator
	problems  int
}

func main() {
	dataDir := flag.String("data", "data", "path to the generated dataset directory")
	pageSize := flag.Int("page-size", 200, "records per listing page used by the builder")
	flag.Parse()

	validator, err := schema.NewValidator()
	if err != nil {
		fmt.Fprintf(os.Stderr, "datacheck: %v\n", err)
		os.Exit(1)
	}

	c := &checker{dataDir: *dataDir, validator: validator}

	lookup := c.checkLookup()
	c.checkDetailShards(lookup)
	total := c.checkMeta(len(lookup))
	c.checkListPages(total, *pageSize)

	if c.problems > 0 {
		fmt.Fprintf(os.Stderr, "datacheck: %d problem(s) found\n", c.problems)
		os.Exit(1)
	}
	fmt.Println("datacheck: dataset ok")
}

func (c *checker) fail(format string, args ...any) {
	c.problems++
	fmt.Fprintf(os.Stderr, "datacheck: "+format+"\n", args...)
}

func (c *checker) readJSON(rel string, v any) bool {
	raw, err := os.ReadFile(filepath.Join(c.dataDir, rel))
	if err != nil {
		c.fail("%s: %v", rel, err)
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		c.fail("%s: invalid JSON: %v", rel, err)
		return false
	}
	return true
}

// checkLookup loads the lookup map and verifies every shard key is the
// builder's sha256-derived key for its id.
func (c *checker) checkLookup() map[string]string {
	var lookup map[string]string
	if !c.readJSON("lookup_shard.json", &lookup) {
		return nil
	}
	for id, key := range lookup {
		if want := resolve.ShardKey(id); key != want {
			c.fail("lookup: id %q maps to shard %q, derivation says %q", id, key, want)
		}
	}
	return lookup
}

// checkDetailShards verifies shard membership and record shape. Each
// shard file is read once.
func (c *checker) checkDetailShards(lookup map[string]string) {
	byShard := make(map[string][]string)
	for id, key := range lookup {
		byShard[key] = append(byShard[key], id)
	}

	for key, ids := range byShard {
		rel := filepath.Join("detail", key+".json")

		var records []json.RawMessage
		if !c.readJSON(rel, &records) {
			continue
		}

		present := make(map[string]bool, len(records))
		for i, raw := range records {
			if err := c.validator.ValidateRecord(raw); err != nil {
				c.fail("%s[%d]: %v", rel, i, err)
				continue
			}
			var rec struct {
				ID string `json:"f"`
			}
			_ = json.Unmarshal(raw, &rec)
			if present[rec.ID] {
				c.fail("%s: duplicate id %q", rel, rec.ID)
			}
			present[rec.ID] = true
		}

		for _, id := range ids {
			if !present[id] {
				c.fail("%s: id %q in lookup map but missing from shard", rel, id)
			}
		}
	}
}

// checkMeta verifies the sitewide total against the lookup map.
func (c *checker) checkMeta(lookupSize int) int {
	var meta struct {
		Total int `json:"total"`
	}
	if !c.readJSON("meta.json", &meta) {
		return 0
	}
	if meta.Total != lookupSize {
		c.fail("meta: total=%d but lookup map has %d ids", meta.Total, lookupSize)
	}
	return meta.Total
}

// checkListPages verifies every listing page the paginator can link to
// actually exists and is non-empty.
func (c *checker) checkListPages(total, pageSize int) {
	if total <= 0 || pageSize <= 0 {
		return
	}
	totalPages := (total + pageSize - 1) / pageSize
	for n := 1; n <= totalPages; n++ {
		rel := filepath.Join("list", fmt.Sprintf("%d.json", n))

		var doc struct {
			Result struct {
				Files []json.RawMessage `json:"files"`
			} `json:"result"`
		}
		if !c.readJSON(rel, &doc) {
			continue
		}
		if len(doc.Result.Files) == 0 {
			c.fail("%s: page is empty", rel)
		}
		if len(doc.Result.Files) > pageSize {
			c.fail("%s: %d records exceeds page size %d", rel, len(doc.Result.Files), pageSize)
		}
	}
}
