package serve

import (
	"flag"
	"os"
	"syscall"

	"github.com/brimdata/serql/cli"
	"github.com/brimdata/serql/cli/logflags"
	"github.com/brimdata/serql/cmd/serql/root"
	"github.com/brimdata/serql/pkg/charm"
	"github.com/brimdata/serql/service"
	"github.com/brimdata/serql/service/logger"
	"gopkg.in/yaml.v3"
)

var Cmd = &charm.Spec{
	Name:  "serve",
	Usage: "serve [options]",
	Short: "run the compiler as an HTTP service",
	Long: `
The serve command listens on the address given by -l and compiles the
syntax trees POSTed to /compile.  It also serves /status, /version, and
Prometheus metrics at /metrics.

An optional YAML file named by -config supplies the service and logger
configuration.  Flags given on the command line override its values.

The -log.level option controls log verbosity. Available levels,
ordered from most to least verbose, are debug, info (the default),
warn, error, dpanic, panic, and fatal.`,
	New: New,
}

// fileConfig is the layout of the -config file.
type fileConfig struct {
	Listen  string         `yaml:"listen"`
	Service service.Config `yaml:"service"`
	Log     *logger.Config `yaml:"log"`
}

type Command struct {
	*root.Command
	flags      *flag.FlagSet
	configFile string
	listenAddr string
	cacheSize  int
	origins    []string
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command), flags: f}
	f.StringVar(&c.configFile, "config", "", "YAML configuration file")
	f.StringVar(&c.listenAddr, "l", ":9867", "[addr]:port to listen on")
	f.IntVar(&c.cacheSize, "cache.size", 0, "number of compiled plans to cache (negative disables)")
	f.Func("cors.origin", "CORS allowed origin (may be repeated)", func(s string) error {
		c.origins = append(c.origins, s)
		return nil
	})
	return c, nil
}

func (c *Command) Run(args []string) error {
	// Don't include SIGPIPE here or else a write to a closed socket (i.e.,
	// a broken network connection) will cancel the context on Linux.
	ctx, cleanup, err := c.Init(syscall.SIGINT, syscall.SIGTERM)
	if err != nil {
		return err
	}
	defer cleanup()
	conf, err := c.loadConfig()
	if err != nil {
		return err
	}
	zlogger, compileLogger := c.Logger(), c.CompileLogger()
	if conf.Log != nil && !c.IsSet(logflags.Names...) {
		if zlogger, compileLogger, err = logflags.Open(*conf.Log, false); err != nil {
			return err
		}
		defer zlogger.Sync()
	}
	conf.Service.Logger = zlogger
	conf.Service.CompileLogger = compileLogger
	conf.Service.Version = cli.Version()
	core, err := service.NewCore(ctx, conf.Service)
	if err != nil {
		return err
	}
	return service.ListenAndServe(ctx, conf.Listen, core)
}

func (c *Command) loadConfig() (fileConfig, error) {
	var conf fileConfig
	if c.configFile != "" {
		b, err := os.ReadFile(c.configFile)
		if err != nil {
			return conf, err
		}
		if err := yaml.Unmarshal(b, &conf); err != nil {
			return conf, err
		}
	}
	if conf.Listen == "" || c.flagSet("l") {
		conf.Listen = c.listenAddr
	}
	if conf.Service.CacheSize == 0 || c.flagSet("cache.size") {
		conf.Service.CacheSize = c.cacheSize
	}
	if len(c.origins) > 0 {
		conf.Service.CORSAllowedOrigins = c.origins
	}
	return conf, nil
}

func (c *Command) flagSet(name string) bool {
	var found bool
	c.flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
