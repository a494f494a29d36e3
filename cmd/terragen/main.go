// Command terragen pre-generates a region of terrain around the world
// origin using the configuration in config.toml, writing the chunks to
// the configured chunk cache. It is the operational tool for warming a
// world's cache before serving it and doubles as a smoke test of a
// configuration.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df-mc/terragen/worldgen"
	"github.com/df-mc/terragen/worldgen/chunk"
	"github.com/df-mc/terragen/worldgen/topology"
	"github.com/pelletier/go-toml"
)

func main() {
	configPath := flag.String("config", "config.toml", "path of the configuration file")
	radius := flag.Int("radius", 4, "horizontal chunk radius to pre-generate around the origin")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	conf, err := readConfig(*configPath, log)
	if err != nil {
		log.Error("read config: " + err.Error())
		os.Exit(1)
	}
	engine := conf.New()
	defer func() {
		if err := engine.Close(); err != nil {
			log.Error("close engine: " + err.Error())
		}
	}()

	if err := pregenerate(engine, int32(*radius), log); err != nil {
		log.Error("pre-generate: " + err.Error())
		os.Exit(1)
	}
}

// pregenerate requests every chunk within the horizontal radius across
// the topology's vertical bounds and waits for completion.
func pregenerate(engine *worldgen.Engine, radius int32, log *slog.Logger) error {
	minZ, maxZ := engine.Bounds()
	total := int(2*radius+1) * int(2*radius+1) * int(maxZ-minZ+1)
	log.Info("pre-generating region", "radius", radius, "layers", maxZ-minZ+1, "chunks", total)

	var (
		wg    sync.WaitGroup
		solid atomic.Int64
	)
	start := time.Now()
	for cx := -radius; cx <= radius; cx++ {
		for cy := -radius; cy <= radius; cy++ {
			for cz := minZ; cz <= maxZ; cz++ {
				wg.Add(1)
				_, err := engine.Request(topology.ChunkPos{cx, cy, cz}, func(res chunk.Result) {
					defer wg.Done()
					var n int64
					for _, v := range res.Buffer.Raw() {
						if v.Solid() {
							n++
						}
					}
					solid.Add(n)
					log.Debug("chunk generated", "pos", res.Pos, "solid", n)
				})
				if err != nil {
					wg.Done()
					return fmt.Errorf("request chunk: %w", err)
				}
			}
		}
	}
	wg.Wait()

	elapsed := time.Since(start)
	log.Info("region complete",
		"chunks", total,
		"solidVoxels", solid.Load(),
		"elapsed", elapsed.Round(time.Millisecond),
		"perChunk", (elapsed / time.Duration(total)).Round(time.Microsecond),
	)
	return nil
}

// readConfig reads the configuration at path, creating it with default
// values if it does not yet exist.
func readConfig(path string, log *slog.Logger) (worldgen.Config, error) {
	c := worldgen.DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		data, err := toml.Marshal(c)
		if err != nil {
			return worldgen.Config{}, fmt.Errorf("encode default config: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return worldgen.Config{}, fmt.Errorf("create default config: %w", err)
		}
		return c.Config(log)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return worldgen.Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return worldgen.Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c.Config(log)
}
