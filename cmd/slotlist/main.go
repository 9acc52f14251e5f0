package main

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	cfgpkg "github.com/rzbill/slotlist/internal/config"
	pebblestore "github.com/rzbill/slotlist/internal/storage/pebble"
	"github.com/rzbill/slotlist/pkg/seglist"
	"github.com/rzbill/slotlist/pkg/slot"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "slotlist",
		Short: "Slotlist CLI",
		Long:  "Slotlist manages growable lists packed into slot storage. This CLI inspects and mutates lists in a local store.",
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (JSON or TOML)")
	pf.String("data-dir", "", "Data directory (defaults to OS-specific application data directory)")
	pf.String("fsync", "", "Fsync mode: always|interval|never")
	pf.String("log-level", os.Getenv("SLOTLIST_LOG_LEVEL"), "Log level: debug|info|warn|error")
	pf.String("domain", "default", "Address space the list lives in")
	pf.Uint32("width", 1, "Element footprint in slots: 1 (u64) or 2 (u128)")

	rootCmd.AddCommand(newLenCmd())
	rootCmd.AddCommand(newAppendCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newSetCmd())
	rootCmd.AddCommand(newLocateCmd())
	rootCmd.AddCommand(newStatsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// env is everything a subcommand needs: an open store and the handle inputs.
type env struct {
	db     *pebblestore.DB
	domain slot.Domain
	width  uint32
}

func openEnv(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := cfgpkg.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	cfgpkg.FromEnv(&cfg)
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v, _ := cmd.Flags().GetString("fsync"); v != "" {
		cfg.Fsync = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}

	logger := newLogger(cfg)

	mode := pebblestore.FsyncModeAlways
	switch cfg.Fsync {
	case "never":
		mode = pebblestore.FsyncModeNever
	case "interval":
		mode = pebblestore.FsyncModeInterval
	case "always", "":
		mode = pebblestore.FsyncModeAlways
	default:
		return nil, fmt.Errorf("invalid fsync mode %q; use always|interval|never", cfg.Fsync)
	}

	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       cfg.DataDir,
		Fsync:         mode,
		FsyncInterval: time.Duration(cfg.FsyncIntervalMs) * time.Millisecond,
		Logger:        &logger,
	})
	if err != nil {
		return nil, err
	}

	domain, _ := cmd.Flags().GetString("domain")
	width, _ := cmd.Flags().GetUint32("width")
	if width != 1 && width != 2 {
		_ = db.Close()
		return nil, fmt.Errorf("invalid --width %d; use 1 or 2", width)
	}
	return &env{db: db, domain: slot.Domain(domain), width: width}, nil
}

func newLogger(cfg cfgpkg.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
	if cfg.LogFormat != "json" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return logger
}

func newLenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "len <list>",
		Short: "Print the length of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.db.Close()
			n, err := e.listLen(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	}
}

func newAppendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "append <list> <value>...",
		Short: "Append values to a list, printing the assigned indices",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.db.Close()
			for _, raw := range args[1:] {
				idx, err := e.appendValue(cmd, args[0], raw)
				if err != nil {
					return err
				}
				fmt.Println(idx)
			}
			return nil
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <list> <index>",
		Short: "Print the value at an index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.db.Close()
			idx, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid index %q", args[1])
			}
			v, err := e.getValue(cmd, args[0], idx)
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	}
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <list> <index> <value>",
		Short: "Overwrite the value at an index",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.db.Close()
			idx, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid index %q", args[1])
			}
			return e.setValue(cmd, args[0], idx, args[2])
		},
	}
}

func newLocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate <list> <index>",
		Short: "Print the segment key and slot offset an index maps to",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, _ := cmd.Flags().GetUint32("width")
			if width != 1 && width != 2 {
				return fmt.Errorf("invalid --width %d; use 1 or 2", width)
			}
			idx, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid index %q", args[1])
			}
			tr := seglist.NewTranslator(slot.SHA256Hasher{})
			seg, off := tr.Locate(slot.NameKey(args[0]), idx, width)
			fmt.Printf("segment=%s offset=%d\n", seg, off)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print slot counts for a domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.db.Close()
			n, err := e.db.CountSlots(e.domain)
			if err != nil {
				return err
			}
			fmt.Printf("domain=%s slots=%d\n", e.domain, n)
			return nil
		},
	}
}

// List bodies are width-dependent; each helper opens a fresh handle against
// the name-derived base key.

func (e *env) listLen(cmd *cobra.Command, name string) (uint64, error) {
	ctx := cmd.Context()
	base := slot.NameKey(name)
	if e.width == 2 {
		l, err := seglist.Open(ctx, e.db, e.domain, base, seglist.U128Codec{})
		if err != nil {
			return 0, err
		}
		return l.Len(), nil
	}
	l, err := seglist.Open(ctx, e.db, e.domain, base, seglist.U64Codec{})
	if err != nil {
		return 0, err
	}
	return l.Len(), nil
}

func (e *env) appendValue(cmd *cobra.Command, name, raw string) (uint64, error) {
	ctx := cmd.Context()
	base := slot.NameKey(name)
	if e.width == 2 {
		v, err := parseU128(raw)
		if err != nil {
			return 0, err
		}
		l, err := seglist.Open(ctx, e.db, e.domain, base, seglist.U128Codec{})
		if err != nil {
			return 0, err
		}
		return l.Append(ctx, v)
	}
	v, err := parseU64(raw)
	if err != nil {
		return 0, err
	}
	l, err := seglist.Open(ctx, e.db, e.domain, base, seglist.U64Codec{})
	if err != nil {
		return 0, err
	}
	return l.Append(ctx, v)
}

func (e *env) getValue(cmd *cobra.Command, name string, idx uint64) (string, error) {
	ctx := cmd.Context()
	base := slot.NameKey(name)
	if e.width == 2 {
		l, err := seglist.Open(ctx, e.db, e.domain, base, seglist.U128Codec{})
		if err != nil {
			return "", err
		}
		v, err := l.Get(ctx, idx)
		if err != nil {
			return "", err
		}
		return formatU128(v), nil
	}
	l, err := seglist.Open(ctx, e.db, e.domain, base, seglist.U64Codec{})
	if err != nil {
		return "", err
	}
	v, err := l.Get(ctx, idx)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(v, 10), nil
}

func (e *env) setValue(cmd *cobra.Command, name string, idx uint64, raw string) error {
	ctx := cmd.Context()
	base := slot.NameKey(name)
	if e.width == 2 {
		v, err := parseU128(raw)
		if err != nil {
			return err
		}
		l, err := seglist.Open(ctx, e.db, e.domain, base, seglist.U128Codec{})
		if err != nil {
			return err
		}
		return l.Set(ctx, idx, v)
	}
	v, err := parseU64(raw)
	if err != nil {
		return err
	}
	l, err := seglist.Open(ctx, e.db, e.domain, base, seglist.U64Codec{})
	if err != nil {
		return err
	}
	return l.Set(ctx, idx, v)
}

func parseU64(raw string) (uint64, error) {
	v, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", raw, err)
	}
	return v, nil
}

func parseU128(raw string) (seglist.U128, error) {
	n, ok := new(big.Int).SetString(raw, 0)
	if !ok || n.Sign() < 0 || n.BitLen() > 128 {
		return seglist.U128{}, fmt.Errorf("invalid u128 value %q", raw)
	}
	lo := new(big.Int).And(n, new(big.Int).SetUint64(^uint64(0)))
	hi := new(big.Int).Rsh(n, 64)
	return seglist.U128{Hi: hi.Uint64(), Lo: lo.Uint64()}, nil
}

func formatU128(v seglist.U128) string {
	n := new(big.Int).SetUint64(v.Hi)
	n.Lsh(n, 64)
	n.Or(n, new(big.Int).SetUint64(v.Lo))
	return n.String()
}
