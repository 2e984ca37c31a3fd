package fmi

import (
	"log"
	"os"

	"github.com/bernlu/chhitset/pkg/chgraph"
)

// LoadCHGraph loads a CH graph from fmiPath, transparently caching the
// parsed result at fmiPath+".chgraph". A missing or stale cache (older
// than the source .fmi file, or unreadable) falls back to re-parsing.
func LoadCHGraph(fmiPath string) (chgraph.Base, error) {
	return loadWithCache(fmiPath, fmiPath+".chgraph", TypeCHGraph)
}

// LoadMaxspeedGraph loads the plain road-network format, caching at
// fmiPath+".fmigraph".
func LoadMaxspeedGraph(fmiPath string) (chgraph.Base, error) {
	return loadWithCache(fmiPath, fmiPath+".fmigraph", TypeMaxspeed)
}

func loadWithCache(fmiPath, cachePath string, t GraphType) (chgraph.Base, error) {
	if cacheIsFresh(fmiPath, cachePath) {
		base, err := chgraph.ReadBinary(cachePath)
		if err == nil {
			log.Printf("fmi: loaded %s from cache %s", fmiPath, cachePath)
			return base, nil
		}
		log.Printf("fmi: cache %s unreadable (%v), re-parsing %s", cachePath, err, fmiPath)
	}

	f, err := os.Open(fmiPath)
	if err != nil {
		return chgraph.Base{}, err
	}
	defer f.Close()

	base, err := ReadFMI(f, t)
	if err != nil {
		return chgraph.Base{}, err
	}

	if err := chgraph.WriteBinary(cachePath, base); err != nil {
		log.Printf("fmi: failed to write cache %s: %v (continuing without it)", cachePath, err)
	}
	return base, nil
}

func cacheIsFresh(sourcePath, cachePath string) bool {
	srcInfo, err := os.Stat(sourcePath)
	if err != nil {
		return false
	}
	cacheInfo, err := os.Stat(cachePath)
	if err != nil {
		return false
	}
	return !cacheInfo.ModTime().Before(srcInfo.ModTime())
}
