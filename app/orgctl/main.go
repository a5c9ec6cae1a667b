package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"orgdash/internal/services"
	"orgdash/pkg/config"
	apperrors "orgdash/pkg/errors"
	applogger "orgdash/pkg/logger"
	"orgdash/pkg/service"
	"orgdash/pkg/types"
)

const usageText = `orgctl - клиент API организаций

Использование:
  orgctl list <ресурс> [-page N] [-page-size N] [-search S] [-ordering F] [-filter k=v,k2=v2]
  orgctl get <ресурс> <id>
  orgctl export <ресурс> -out file.xlsx [-org ID]
  orgctl token -sub ID [-perm a,b]

Флаг -v включает отладочный лог в stderr.
Адрес API и токен берутся из API_BASE_URL и API_TOKEN (.env поддерживается).
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run возвращает код выхода: 0 - успех, 1 - ошибка (JSON в stderr), 2 - неверный вызов.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprint(stderr, usageText)
		return 2
	}

	cfg := config.New()
	var err error
	switch args[0] {
	case "list":
		err = runList(ctx, cfg, args[1:], stdout, stderr)
	case "get":
		err = runGet(ctx, cfg, args[1:], stdout, stderr)
	case "export":
		err = runExport(ctx, cfg, args[1:], stdout, stderr)
	case "token":
		err = runToken(cfg, args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "неизвестная команда %q\n\n%s", args[0], usageText)
		return 2
	}
	if err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(apperrors.FormatError(err))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func usageError(field, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return apperrors.NewValidationError(msg, map[string][]string{field: {msg}}, nil)
}

// command - разбор флагов подкоманды. Позиционные аргументы идут до флагов.
type command struct {
	fs      *flag.FlagSet
	verbose *bool
}

func newCommand(name string, stderr io.Writer) *command {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return &command{fs: fs, verbose: fs.Bool("v", false, "отладочный лог в stderr")}
}

func (c *command) parse(args []string, positional int) ([]string, error) {
	if len(args) < positional {
		return nil, usageError("args", "%s: ожидается %d аргумент(а), получено %d", c.fs.Name(), positional, len(args))
	}
	if err := c.fs.Parse(args[positional:]); err != nil {
		return nil, usageError("flags", "%s: %v", c.fs.Name(), err)
	}
	if c.fs.NArg() > 0 {
		return nil, usageError("args", "%s: лишние аргументы %v", c.fs.Name(), c.fs.Args())
	}
	return args[:positional], nil
}

func (c *command) logger() *zap.Logger {
	level := "warn"
	if *c.verbose {
		level = "debug"
	}
	return applogger.NewLogger(config.LogConfig{Level: level, Outputs: []string{"stderr"}})
}

func (c *command) api(cfg *config.Config) (map[string]resourceCommands, error) {
	api, err := services.NewAPI(cfg.API, c.logger())
	if err != nil {
		return nil, usageError("API_BASE_URL", "%v", err)
	}
	return registry(api), nil
}

func runList(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	cmd := newCommand("list", stderr)
	page := cmd.fs.String("page", "", "номер страницы")
	pageSize := cmd.fs.String("page-size", "", "размер страницы")
	search := cmd.fs.String("search", "", "поиск")
	ordering := cmd.fs.String("ordering", "", "сортировка, например -created_at")
	filter := cmd.fs.String("filter", "", "фильтры k=v через запятую")
	positional, err := cmd.parse(args, 1)
	if err != nil {
		return err
	}

	params := types.Params{"page": *page, "page_size": *pageSize, "search": *search, "ordering": *ordering}
	if *filter != "" {
		for _, pair := range strings.Split(*filter, ",") {
			key, value, ok := strings.Cut(pair, "=")
			if !ok || strings.TrimSpace(key) == "" {
				return usageError("filter", "фильтр %q: ожидается k=v", pair)
			}
			params[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}

	commands, err := cmd.api(cfg)
	if err != nil {
		return err
	}
	resource, err := lookup(commands, positional[0])
	if err != nil {
		return usageError("resource", "%v", err)
	}
	result, err := resource.list(ctx, params)
	if err != nil {
		return err
	}
	return printJSON(stdout, result)
}

func runGet(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	cmd := newCommand("get", stderr)
	positional, err := cmd.parse(args, 2)
	if err != nil {
		return err
	}

	commands, err := cmd.api(cfg)
	if err != nil {
		return err
	}
	resource, err := lookup(commands, positional[0])
	if err != nil {
		return usageError("resource", "%v", err)
	}
	result, err := resource.get(ctx, positional[1])
	if err != nil {
		return err
	}
	return printJSON(stdout, result)
}

func runExport(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) (err error) {
	cmd := newCommand("export", stderr)
	out := cmd.fs.String("out", "", "путь к файлу .xlsx")
	orgID := cmd.fs.String("org", "", "выгрузить только данные организации")
	positional, err := cmd.parse(args, 1)
	if err != nil {
		return err
	}
	if *out == "" {
		return usageError("out", "export: укажите -out file.xlsx")
	}

	commands, err := cmd.api(cfg)
	if err != nil {
		return err
	}
	resource, err := lookup(commands, positional[0])
	if err != nil {
		return usageError("resource", "%v", err)
	}
	if resource.exportTo == nil {
		return usageError("resource", "export: ресурс %q не выгружается", positional[0])
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("не удалось создать %s: %w", *out, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(*out)
		}
	}()

	rows, err := resource.exportTo(ctx, f, *orgID)
	if err != nil {
		return err
	}
	return printJSON(stdout, map[string]any{"resource": positional[0], "rows": rows, "file": *out})
}

func runToken(cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	cmd := newCommand("token", stderr)
	subject := cmd.fs.String("sub", "", "идентификатор пользователя")
	perms := cmd.fs.String("perm", "", "права через запятую, например organizations:view,teams:manage")
	ttl := cmd.fs.Duration("ttl", cfg.JWT.AccessTokenTTL, "время жизни токена")
	if _, err := cmd.parse(args, 0); err != nil {
		return err
	}
	if *subject == "" {
		return usageError("sub", "token: укажите -sub")
	}
	if cfg.JWT.SecretKey == "" {
		return usageError("JWT_SECRET_KEY", "token: JWT_SECRET_KEY не задан")
	}

	var permissions []string
	for _, p := range strings.Split(*perms, ",") {
		if p = strings.TrimSpace(p); p != "" {
			permissions = append(permissions, p)
		}
	}

	token, err := service.NewJWTService(cfg.JWT.SecretKey, *ttl).GenerateToken(*subject, permissions)
	if err != nil {
		return fmt.Errorf("не удалось выпустить токен: %w", err)
	}
	_, err = fmt.Fprintln(stdout, token)
	return err
}
