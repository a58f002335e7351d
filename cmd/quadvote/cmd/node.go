package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"quadvote.io/quadvote/cmd/quadvote/common"
	qvcommon "quadvote.io/quadvote/lib/common"
	"quadvote.io/quadvote/lib/ledger"
	"quadvote.io/quadvote/lib/metrics"
	"quadvote.io/quadvote/lib/network/api"
	"quadvote.io/quadvote/lib/network/httpcache"
	"quadvote.io/quadvote/lib/storage"
	"quadvote.io/quadvote/lib/version"
	"quadvote.io/quadvote/lib/voting"
)

const defaultBind string = "0.0.0.0:12345"
const defaultLogLevel logging.Lvl = logging.LvlInfo
const defaultTickInterval time.Duration = 5 * time.Second

var (
	flagBind                string = qvcommon.GetENVValue("QUADVOTE_BIND", defaultBind)
	flagLogLevel            string = qvcommon.GetENVValue("QUADVOTE_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput           string = qvcommon.GetENVValue("QUADVOTE_LOG_OUTPUT", "")
	flagStorageConfigString string
	flagPolicyFile          string = qvcommon.GetENVValue("QUADVOTE_POLICY", "")
	flagGenesisString       string = qvcommon.GetENVValue("QUADVOTE_GENESIS", "")
	flagTickInterval        string = qvcommon.GetENVValue("QUADVOTE_TICK_INTERVAL", defaultTickInterval.String())
	flagHTTPCacheAdapter    string = qvcommon.GetENVValue("QUADVOTE_HTTP_CACHE_ADAPTER", "")
	flagHTTPCachePoolSize   int    = 1000
	flagRedisAddrs          common.ListFlags
)

var (
	nodeCmd *cobra.Command

	storageConfig *storage.Config
	policy        voting.Policy
	genesis       time.Time
	tickInterval  time.Duration
	logLevel      logging.Lvl
	log           logging.Logger
)

func init() {
	var err error

	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run quadvote node",
		Run: func(c *cobra.Command, args []string) {
			parseFlagsNode()

			runNode()
			return
		},
	}

	// storage
	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", err)
	}
	flagStorageConfigString = qvcommon.GetENVValue("QUADVOTE_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	nodeCmd.Flags().StringVar(&flagBind, "bind", flagBind, "address to listen on ('0.0.0.0:12345')")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	nodeCmd.Flags().StringVar(&flagPolicyFile, "policy", flagPolicyFile, "proposal policy yaml file")
	nodeCmd.Flags().StringVar(&flagGenesisString, "genesis", flagGenesisString, "genesis instant of the tick clock (RFC3339, default now)")
	nodeCmd.Flags().StringVar(&flagTickInterval, "tick-interval", flagTickInterval, "wall time per logical tick")
	nodeCmd.Flags().StringVar(&flagHTTPCacheAdapter, "http-cache-adapter", flagHTTPCacheAdapter, "http cache adapter: {mem, redis}")
	nodeCmd.Flags().IntVar(&flagHTTPCachePoolSize, "http-cache-pool-size", flagHTTPCachePoolSize, "http cache pool size")
	nodeCmd.Flags().Var(&flagRedisAddrs, "http-cache-redis-addrs", "redis ring addresses: '<name>=<addr>'")

	rootCmd.AddCommand(nodeCmd)
}

func parseFlagsNode() {
	var err error

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", errors.Wrap(err, "invalid storage uri"))
	}

	policy = voting.DefaultPolicy()
	if len(flagPolicyFile) > 0 {
		if policy, err = voting.NewPolicyFromFile(flagPolicyFile); err != nil {
			common.PrintFlagsError(nodeCmd, "--policy", err)
		}
	}

	genesis = time.Now()
	if len(flagGenesisString) > 0 {
		if genesis, err = time.Parse(time.RFC3339, flagGenesisString); err != nil {
			common.PrintFlagsError(nodeCmd, "--genesis", err)
		}
	}

	if tickInterval, err = time.ParseDuration(flagTickInterval); err != nil {
		common.PrintFlagsError(nodeCmd, "--tick-interval", err)
	}
	if tickInterval <= 0 {
		common.PrintFlagsError(nodeCmd, "--tick-interval", errors.New("must be positive"))
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		common.PrintFlagsError(nodeCmd, "--log-level", err)
	}

	var logHandler logging.Handler

	var formatter logging.Format
	if isatty.IsTerminal(os.Stdout.Fd()) {
		formatter = logging.TerminalFormat()
	} else {
		formatter = logging.JsonFormatEx(false, true)
	}
	logHandler = logging.StreamHandler(os.Stdout, formatter)

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, logging.JsonFormat()); err != nil {
			common.PrintFlagsError(nodeCmd, "--log-output", err)
		}
	}

	log = logging.New("module", "main")
	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	voting.SetLogging(logLevel, logHandler)
	ledger.SetLogging(logLevel, logHandler)
	api.SetLogging(logLevel, logHandler)

	log.Info("Starting quadvote")

	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tbind", flagBind)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorageConfigString)
	parsedFlags = append(parsedFlags, "\n\tpolicy", flagPolicyFile)
	parsedFlags = append(parsedFlags, "\n\tgenesis", genesis.Format(time.RFC3339))
	parsedFlags = append(parsedFlags, "\n\ttick-interval", tickInterval)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)
	parsedFlags = append(parsedFlags, "\n\thttp-cache-adapter", flagHTTPCacheAdapter)

	log.Debug("parsed flags:", parsedFlags...)
}

func runNode() {
	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)

		os.Exit(1)
	}
	defer st.Close()

	metrics.InitPrometheusMetrics()

	clock := voting.IntervalClock{Genesis: genesis, Interval: tickInterval}
	engine := voting.NewEngine(st, ledger.NewLevelDBLedger(), clock, policy)

	nodeInfo := api.NodeInfo{
		Version:  version.ToDetailVersion(),
		Started:  time.Now().Format(time.RFC3339),
		Storage:  flagStorageConfigString,
		Endpoint: flagBind,
		Policy:   engine.Policy(),
	}

	wrap := func(h http.HandlerFunc) http.HandlerFunc { return h }
	if len(flagHTTPCacheAdapter) > 0 {
		redisAddrs := map[string]string{}
		for _, pair := range flagRedisAddrs {
			parsed := strings.SplitN(pair, "=", 2)
			if len(parsed) != 2 {
				common.PrintFlagsError(nodeCmd, "--http-cache-redis-addrs", errors.Errorf("invalid '%s'", pair))
			}
			redisAddrs[parsed[0]] = parsed[1]
		}

		adapter, err := httpcache.NewAdapter(flagHTTPCacheAdapter, flagHTTPCachePoolSize, redisAddrs)
		if err != nil {
			common.PrintFlagsError(nodeCmd, "--http-cache-adapter", err)
		}

		cacheClient, err := httpcache.NewClient(
			httpcache.WithAdapter(adapter),
			httpcache.WithExpire(tickInterval),
			httpcache.WithLogger(log),
		)
		if err != nil {
			common.PrintFlagsError(nodeCmd, "--http-cache-adapter", err)
		}
		wrap = cacheClient.WrapHandlerFunc
	}

	router := mux.NewRouter()
	router.Use(api.MetricsMiddleware)

	apiHandler := api.NewNetworkHandlerAPI(st, "", nodeInfo)
	apiHandler.AddAPIHandlers(router, wrap)
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	server := &http.Server{
		Addr:    flagBind,
		Handler: router,
	}

	var g run.Group
	{
		g.Add(func() error {
			log.Info("listening", "bind", flagBind)
			return server.ListenAndServe()
		}, func(error) {
			server.Close()
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return common.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		log.Info("shutting down", "reason", err)
	}
}
