package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/o0olele/trimesh-go/geometry"
	"github.com/o0olele/trimesh-go/mesh"
)

// BuildConfig describes one shape build.
type BuildConfig struct {
	Triangles  []geometry.Triangle `yaml:"triangles"`
	OutputFile string              `yaml:"output_file"`
	Gzip       bool                `yaml:"gzip"`
}

func loadBuildConfig(path string) (*BuildConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %v", err)
	}
	cfg := &BuildConfig{Gzip: true}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}
	if len(cfg.Triangles) == 0 {
		return nil, fmt.Errorf("config lists no triangles")
	}
	if cfg.OutputFile == "" {
		return nil, fmt.Errorf("config has no output_file")
	}
	return cfg, nil
}

func buildCommand(logger *zap.Logger) cli.Command {
	return cli.Command{
		Name:  "build",
		Usage: "build a mesh shape from a YAML config and save it",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "config, c", Usage: "build config file"},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := loadBuildConfig(ctx.String("config"))
			if err != nil {
				return err
			}

			settings := mesh.NewSettingsFromTriangles(cfg.Triangles, nil)
			shape, err := settings.Create()
			if err != nil {
				return fmt.Errorf("failed to build mesh shape: %v", err)
			}

			mesh.UseGzip(cfg.Gzip)
			if err := shape.SaveFile(cfg.OutputFile); err != nil {
				return fmt.Errorf("failed to save mesh shape: %v", err)
			}

			stats := shape.GetStats()
			logger.Info("mesh shape saved",
				zap.String("file", cfg.OutputFile),
				zap.Int("triangles", stats.NumTriangles),
				zap.Int("tree_bytes", stats.SizeBytes))
			return nil
		},
	}
}

func infoCommand(logger *zap.Logger) cli.Command {
	return cli.Command{
		Name:  "info",
		Usage: "print the stats of a saved mesh shape",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "file, f", Usage: "mesh shape file"},
			cli.BoolTFlag{Name: "gzip", Usage: "file is gzip compressed"},
		},
		Action: func(ctx *cli.Context) error {
			mesh.UseGzip(ctx.BoolT("gzip"))
			shape, err := mesh.LoadFile(ctx.String("file"))
			if err != nil {
				return err
			}

			stats := shape.GetStats()
			bounds := shape.LocalBounds()

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Field", "Value"})
			table.Append([]string{"Triangles", strconv.Itoa(stats.NumTriangles)})
			table.Append([]string{"Tree bytes", strconv.Itoa(stats.SizeBytes)})
			table.Append([]string{"Sub shape ID bits", strconv.Itoa(int(shape.SubShapeIDBits()))})
			table.Append([]string{"Bounds min", bounds.Min.String()})
			table.Append([]string{"Bounds max", bounds.Max.String()})
			table.Render()
			return nil
		},
	}
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	app := cli.NewApp()
	app.Name = "meshtool"
	app.Usage = "build and inspect static triangle mesh collision shapes"
	app.Commands = []cli.Command{
		buildCommand(logger),
		infoCommand(logger),
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal("meshtool failed", zap.Error(err))
	}
}
