package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	DataPath string
	Threads  int
	Debug    bool

	// Args holds the positional arguments left over after flag parsing:
	// structure file, words file, optional output image.
	Args []string
}

// Load parses flags and CROSSFILL_* environment variables into c.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("crossfill", pflag.ContinueOnError)
	fs.String("data-path", "./data", "directory holding structure and word files")
	fs.Int("threads", 1, "number of search threads")
	fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	v.SetEnvPrefix("crossfill")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	c.DataPath = v.GetString("data-path")
	c.Threads = v.GetInt("threads")
	c.Debug = v.GetBool("debug")
	c.Args = fs.Args()
	return nil
}

// AdjustRelativePaths anchors the data path to the executable's
// directory when it was left relative.
func (c *Config) AdjustRelativePaths(exeDir string) {
	if !filepath.IsAbs(c.DataPath) {
		c.DataPath = filepath.Join(exeDir, c.DataPath)
	}
}
