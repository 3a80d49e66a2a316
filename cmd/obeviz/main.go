package main

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/obeviz/obeviz/dash"
	"github.com/obeviz/obeviz/frame"
)

func ServeCommand() *cobra.Command {
	var addr string
	var dataFile string

	var cmd = &cobra.Command{
		Use:   "serve -d dataFile [-a addr]",
		Short: "Serves the obesity survey dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := frame.Open(dataFile, dash.RequiredColumns...)
			if err != nil {
				return err
			}
			srv, err := dash.NewServer(ds, log.Logger)
			if err != nil {
				return err
			}
			log.Info().Str("addr", addr).Int("rows", ds.Len()).Msg("listening")
			return http.ListenAndServe(addr, srv.Handler())
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":5000", "address to listen on")
	cmd.Flags().StringVarP(&dataFile, "data", "d", "", "name of the survey dataset file")

	_ = cmd.MarkFlagRequired("data")

	return cmd
}

var logLevel string
var logFormat string

func main() {
	Main := &cobra.Command{Use: "obeviz", PersistentPreRun: setupLogging}

	Main.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info", "Logging level: info error or debug")
	Main.PersistentFlags().StringVarP(&logFormat, "log-format", "", "pretty", "Logging format: pretty or json")

	Main.AddCommand(ServeCommand())

	if err := Main.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) {
	switch logLevel {
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		panic("Invalid logging level specified")
	}

	switch logFormat {
	case "pretty":
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	case "json":
	default:
		panic("Invalid log format specified")
	}
}
