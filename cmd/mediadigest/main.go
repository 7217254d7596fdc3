package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/mediadigest/pkg/appstate"
	"github.com/dmitrymomot/mediadigest/pkg/config"
	"github.com/dmitrymomot/mediadigest/pkg/digest"
	"github.com/dmitrymomot/mediadigest/pkg/email"
	"github.com/dmitrymomot/mediadigest/pkg/imagehost"
	"github.com/dmitrymomot/mediadigest/pkg/jmap"
	"github.com/dmitrymomot/mediadigest/pkg/logger"
	"github.com/dmitrymomot/mediadigest/pkg/mailjet"
	"github.com/dmitrymomot/mediadigest/pkg/mjml"
	"github.com/dmitrymomot/mediadigest/pkg/plex"
	"github.com/dmitrymomot/mediadigest/pkg/statestore"
)

type appConfig struct {
	LogLevel     slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string     `env:"LOG_FORMAT" envDefault:"text"`
	StateBackend string     `env:"STATE_BACKEND" envDefault:"file"`
	StateFile    string     `env:"STATE_FILE"`
	FromName     string     `env:"DIGEST_FROM_NAME" envDefault:"Media Digest"`
	FromEmail    string     `env:"DIGEST_FROM_EMAIL"`
	Subject      string     `env:"DIGEST_SUBJECT" envDefault:"Recently added to Plex"`
	Intro        string     `env:"DIGEST_INTRO" envDefault:"Check out what has been recently added to the media server."`
	Tag          string     `env:"DIGEST_TAG" envDefault:"media-digest"`
	SandboxMode  bool       `env:"MAILJET_SANDBOX" envDefault:"false"`
	DevEmailDir  string     `env:"DEV_EMAIL_DIR" envDefault:"emails"`
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		slog.Error("command failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if _, err := os.Stat(".env"); err == nil {
		if err := config.LoadEnv(".env"); err != nil {
			return err
		}
	}

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithLevel(cfg.LogLevel),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithAttr(slog.String("app", "mediadigest")),
	)
	logger.SetAsDefault(log)

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	var plexCfg plex.Config
	if err := config.Load(&plexCfg); err != nil {
		return err
	}
	server := plex.New(plexCfg)

	providers, err := buildRegistry(ctx, cfg, log)
	if err != nil {
		return err
	}

	state := appstate.New(store, server, providers, appstate.WithLogger(log))
	if err := state.Init(ctx); err != nil {
		return err
	}

	if len(args) == 0 {
		usage()
		return nil
	}

	switch args[0] {
	case "servers":
		state.ConnectToServer(ctx)
		for _, s := range state.Servers() {
			fmt.Printf("%s\t%s\t%s\n", s.MachineIdentifier, s.Name, s.Host)
		}
		return nil
	case "sections":
		state.ConnectAndRefresh(ctx)
		for _, d := range state.LibrarySections() {
			fmt.Printf("%s\t%s\t%s\n", d.Key, d.Type, d.Title)
		}
		return nil
	case "recent":
		state.ConnectAndRefresh(ctx)
		for _, m := range state.RecentlyAdded() {
			fmt.Printf("%s\t%s\n", m.Key, digest.MediaTitle(m))
		}
		return nil
	case "select":
		return runSelect(ctx, state, args[1:])
	case "contacts":
		return runContacts(ctx, state, args[1:])
	case "set":
		return runSet(ctx, state, args[1:])
	case "providers":
		for _, name := range providers.Names() {
			fmt.Println(name)
		}
		return nil
	case "send":
		return runSend(ctx, cfg, state, args[1:])
	default:
		usage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func runSelect(ctx context.Context, state *appstate.State, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: select sections|media <key,key,...>")
	}
	keys := splitList(args[1])
	switch args[0] {
	case "sections":
		return state.SetSelectedSectionKeys(ctx, keys)
	case "media":
		return state.SetSelectedMediaKeys(ctx, keys)
	default:
		return fmt.Errorf("unknown selection target: %s", args[0])
	}
}

func runContacts(ctx context.Context, state *appstate.State, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		for _, c := range state.Contacts() {
			status := "inactive"
			if c.Active {
				status = "active"
			}
			fmt.Printf("%s\t%s\t%s\n", c.Email, c.Name, status)
		}
		return nil
	case "add":
		if len(args) != 3 {
			return fmt.Errorf("usage: contacts add <name> <email>")
		}
		return state.AddContact(ctx, appstate.Contact{Name: args[1], Email: args[2], Active: true})
	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("usage: contacts remove <email>")
		}
		return state.RemoveContact(ctx, args[1])
	case "enable", "disable":
		if len(args) != 2 {
			return fmt.Errorf("usage: contacts %s <email>", args[0])
		}
		return state.SetContactActive(ctx, args[1], args[0] == "enable")
	default:
		return fmt.Errorf("unknown contacts action: %s", args[0])
	}
}

func runSet(ctx context.Context, state *appstate.State, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: set plex-url|plex-token|provider <value>")
	}
	switch args[0] {
	case "plex-url":
		return state.SetPlexURL(ctx, args[1])
	case "plex-token":
		return state.SetPlexToken(ctx, args[1])
	case "provider":
		return state.SetProvider(ctx, args[1])
	default:
		return fmt.Errorf("unknown setting: %s", args[0])
	}
}

func runSend(ctx context.Context, cfg appConfig, state *appstate.State, args []string) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	provider := fs.String("provider", "", "delivery provider, defaults to the persisted one")
	subject := fs.String("subject", cfg.Subject, "digest subject line")
	intro := fs.String("intro", cfg.Intro, "text shown above the media list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state.ConnectAndRefresh(ctx)
	return state.SendDigest(ctx, *provider, *subject, *intro)
}

func newStore(ctx context.Context, cfg appConfig) (statestore.Store, error) {
	if cfg.StateBackend == "redis" {
		var redisCfg statestore.RedisConfig
		if err := config.Load(&redisCfg); err != nil {
			return nil, err
		}
		return statestore.NewRedisStore(ctx, redisCfg)
	}

	path := cfg.StateFile
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "mediadigest", "state.json")
	}
	return statestore.NewFileStore(path)
}

// buildRegistry registers every delivery provider whose credentials are
// configured. The dev provider is always available so the digest can be
// previewed without any external account.
func buildRegistry(ctx context.Context, cfg appConfig, log *slog.Logger) (*digest.Registry, error) {
	var compilerCfg mjml.CompilerConfig
	if err := config.Load(&compilerCfg); err != nil {
		return nil, err
	}
	var compiler mjml.Compiler = mjml.NopCompiler{}
	if compilerCfg.AppID != "" {
		c, err := mjml.NewAPICompiler(compilerCfg)
		if err != nil {
			return nil, err
		}
		compiler = c
	}

	composer := digest.NewComposer(compiler)
	fetcher := digest.NewImageFetcher(digest.WithFetcherLogger(log))
	registry := digest.NewRegistry()

	var jmapCfg jmap.Config
	if err := config.Load(&jmapCfg); err != nil {
		return nil, err
	}
	if jmapCfg.Host != "" {
		host, err := newImageHost(ctx)
		if err != nil {
			return nil, err
		}
		if host == nil {
			log.Warn("jmap drafts provider disabled: no image host configured")
		} else {
			registry.Register(digest.NewDraftsProvider(jmap.New(jmapCfg), host, fetcher, composer))
		}
	}

	var mailjetCfg mailjet.Config
	if err := config.Load(&mailjetCfg); err != nil {
		return nil, err
	}
	if mailjetCfg.APIKey != "" {
		if cfg.FromEmail == "" {
			log.Warn("mailjet providers disabled: DIGEST_FROM_EMAIL is not set")
		} else {
			client := mailjet.New(mailjetCfg)
			from := mailjet.EmailAddress{Name: cfg.FromName, Email: cfg.FromEmail}
			registry.Register(digest.NewTransactionalProvider(client, fetcher, composer, from, cfg.SandboxMode))
			registry.Register(digest.NewCampaignProvider(client, fetcher, composer, from, cfg.SandboxMode))
		}
	}

	var emailCfg email.Config
	if err := config.Load(&emailCfg); err != nil {
		return nil, err
	}
	if emailCfg.PostmarkServerToken != "" {
		sender, err := email.NewPostmarkSender(emailCfg)
		if err != nil {
			return nil, err
		}
		registry.Register(digest.NewSenderProvider("postmark", sender, fetcher, composer, cfg.Tag))
	}

	registry.Register(digest.NewSenderProvider("dev", email.NewDevSender(cfg.DevEmailDir), fetcher, composer, cfg.Tag))

	return registry, nil
}

func newImageHost(ctx context.Context) (imagehost.Host, error) {
	var imgurCfg imagehost.ImgurConfig
	if err := config.Load(&imgurCfg); err != nil {
		return nil, err
	}
	if imgurCfg.ClientID != "" {
		return imagehost.NewImgurHost(imgurCfg)
	}

	var s3Cfg imagehost.S3Config
	if err := config.Load(&s3Cfg); err != nil {
		return nil, err
	}
	if s3Cfg.Bucket != "" {
		return imagehost.NewS3Host(ctx, s3Cfg)
	}

	return nil, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}

func usage() {
	fmt.Print(`Usage: mediadigest <command> [arguments]

Commands:
  servers                          connect and list available servers
  sections                         refresh and list library sections
  recent                           refresh and list recently added media
  select sections <key,key,...>    choose library sections to watch
  select media <key,key,...>       choose media items for the next digest
  contacts [list]                  list contacts
  contacts add <name> <email>      add or update a contact
  contacts remove <email>          remove a contact
  contacts enable|disable <email>  toggle a contact's digest subscription
  set plex-url|plex-token <value>  update the media server connection
  set provider <name>              persist the default delivery provider
  providers                        list configured delivery providers
  send [-provider] [-subject] [-intro]
                                   compose and deliver the digest
`)
}
