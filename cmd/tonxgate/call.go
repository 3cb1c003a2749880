package main

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/frigatebird-studio/tonx-go/internal/config"
	"github.com/frigatebird-studio/tonx-go/pkg/errors"
	"github.com/frigatebird-studio/tonx-go/pkg/provider"
)

var (
	red  = color.New(color.FgRed, color.Bold).SprintFunc()
	dim  = color.New(color.Faint).SprintFunc()
	cyan = color.New(color.FgCyan).SprintFunc()
)

var callCmd = &cobra.Command{
	Use:   "call <method> [params-json]",
	Short: "Call one TONX method and print the result",
	Example: `  tonxgate call getMasterchainInfo
  tonxgate call getAccountBalance '{"address":"EQ..."}'`,
	Args:          cobra.RangeArgs(1, 2),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		var params string
		if len(args) == 2 {
			params = args[1]
		}

		if err := callMethod(cmd.Context(), cfg, args[0], params, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
			printFailure(cmd.ErrOrStderr(), err)
			return err
		}
		return nil
	},
}

// callMethod 执行一次 TONX 调用并把结果格式化输出到 out
func callMethod(ctx context.Context, cfg *config.Config, method, params string, out, logOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	action := provider.Action{Method: method}
	if params != "" {
		if !json.Valid([]byte(params)) {
			return errors.LocalValidation(method, "params must be valid JSON")
		}
		action.Params = json.RawMessage(params)
	}

	logger, err := errors.NewLogger(&errors.LoggerConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: logOut,
	})
	if err != nil {
		return errors.Config(err)
	}

	p, err := provider.New(provider.Options{
		Network: cfg.Upstream.NetworkID(),
		APIKey:  cfg.Upstream.APIKey,
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	ctx, _ = errors.EnsureRequestID(ctx)
	result, err := p.Perform(ctx, action)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, result, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(result)
	}
	fmt.Fprintln(out, pretty.String())
	return nil
}

// printFailure 按错误分类输出失败信息
func printFailure(w io.Writer, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		fmt.Fprintf(w, "%s %v\n", red("error"), err)
		return
	}

	fmt.Fprintf(w, "%s %s\n", red(string(appErr.Type)), appErr.Message)
	if appErr.Details != "" {
		fmt.Fprintf(w, "  %s %s\n", dim("details:"), appErr.Details)
	}
	if raw := appErr.Raw(); len(raw) > 0 {
		fmt.Fprintf(w, "  %s %s\n", dim("raw:"), cyan(string(raw)))
	}
}
