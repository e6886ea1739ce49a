package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hbl-card-payment/application"
	"hbl-card-payment/utils/amount"
	"hbl-card-payment/utils/configs"
	"hbl-card-payment/utils/gpooling"
	logger2 "hbl-card-payment/utils/logger"
)

const drainTimeout = 5 * time.Second

type submitFlags struct {
	orderNo     string
	description string
	amount      string
	overrides   []string
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "paco-cli",
		Short:         "Send HBL card payment requests to the 2C2P PACO gateway",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config.json)")

	root.AddCommand(newSubmitCmd(&configPath))
	return root
}

func newSubmitCmd(configPath *string) *cobra.Command {
	flags := submitFlags{}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit one prePaymentUi request and print the verified answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := amount.ParseAmount(flags.amount)
			if err != nil {
				return err
			}
			opts, err := parseOverrides(flags.overrides)
			if err != nil {
				return err
			}

			app, cleanup, err := newApplication(*configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			claims, err := app.Submit(context.Background(), flags.orderNo, flags.description, value, opts...)
			if err != nil {
				return err
			}

			out := json.NewEncoder(cmd.OutOrStdout())
			out.SetIndent("", "  ")
			return out.Encode(claims)
		},
	}

	cmd.Flags().StringVar(&flags.orderNo, "order-no", "", "merchant order number")
	cmd.Flags().StringVar(&flags.description, "description", "", "product description")
	cmd.Flags().StringVar(&flags.amount, "amount", "", "amount in major units, e.g. 100.00")
	cmd.Flags().StringArrayVar(&flags.overrides, "set", nil, "extra top-level request field, key=value (repeatable)")
	_ = cmd.MarkFlagRequired("order-no")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// parseOverrides turns key=value pairs into request options. Values that
// look like booleans or integers are sent as such.
func parseOverrides(pairs []string) ([]application.RequestOption, error) {
	opts := make([]application.RequestOption, 0, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("override %q: want key=value", pair)
		}
		opts = append(opts, application.Override(key, overrideValue(raw)))
	}
	return opts, nil
}

func overrideValue(raw string) interface{} {
	if raw == "true" || raw == "false" {
		return cast.ToBool(raw)
	}
	if i, err := cast.ToInt64E(raw); err == nil && !strings.HasPrefix(raw, "0") {
		return i
	}
	return raw
}

func newApplication(configPath string) (*application.PaymentApplication, func(), error) {
	var (
		config *configs.Config
		err    error
	)
	if configPath == "" {
		config, err = configs.LoadConfig()
	} else {
		config, err = configs.LoadConfigFile(configPath)
	}
	if err != nil {
		return nil, nil, err
	}

	lg, err := logger2.NewLogger(config.ENV)
	if err != nil {
		return nil, nil, err
	}

	pool, err := gpooling.NewPooling(config.MaxPoolSize, lg)
	if err != nil {
		return nil, nil, err
	}

	app, err := application.NewPaymentApplication(config, lg, pool)
	if err != nil {
		pool.Release()
		return nil, nil, err
	}

	return app, func() {
		if err := app.Shutdown(drainTimeout); err != nil {
			lg.With(zap.Error(err)).Warn("close event sink")
		}
		_ = lg.Sync()
	}, nil
}
