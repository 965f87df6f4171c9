package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/case-framework/discovery-builder/pkg/apihelpers"
	"github.com/case-framework/discovery-builder/pkg/db"
	"github.com/case-framework/discovery-builder/pkg/db/localstore"
	discoveryclient "github.com/case-framework/discovery-builder/pkg/discovery-client"
	"github.com/case-framework/discovery-builder/pkg/survey/builder"
	"github.com/case-framework/discovery-builder/pkg/survey/trash"
	"github.com/case-framework/discovery-builder/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	surveydraftsDB "github.com/case-framework/discovery-builder/pkg/db/survey-drafts"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_DRAFT_DB_USERNAME   = "DRAFT_DB_USERNAME"
	ENV_DRAFT_DB_PASSWORD   = "DRAFT_DB_PASSWORD"
	ENV_DISCOVERY_API_KEY   = "DISCOVERY_API_KEY"
	ENV_BUILDER_API_KEYS    = "BUILDER_API_KEYS"
	ENV_BUILDER_LISTEN_PORT = "BUILDER_API_LISTEN_PORT"
)

const (
	DRAFT_STORAGE_NONE  = "none"
	DRAFT_STORAGE_LOCAL = "local"
	DRAFT_STORAGE_MONGO = "mongo"
)

type APIClient struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	Key  string `json:"key" yaml:"key"`
}

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	APIClients []APIClient `json:"api_clients" yaml:"api_clients" validate:"dive"`

	LocalStore struct {
		Path       string `json:"path" yaml:"path" validate:"required"`
		GCInterval string `json:"gc_interval" yaml:"gc_interval"`
	} `json:"local_store" yaml:"local_store"`

	Autosave struct {
		Delay   string `json:"delay" yaml:"delay"`
		Storage string `json:"storage" yaml:"storage" validate:"omitempty,oneof=none local mongo"`
	} `json:"autosave" yaml:"autosave"`

	// DB configs
	DBConfigs struct {
		// validated only when drafts are stored in MongoDB
		DraftDB db.DBConfigYaml `json:"draft_db" yaml:"draft_db" validate:"-"`
	} `json:"db_configs" yaml:"db_configs"`

	Discovery struct {
		RootURL   string                       `json:"root_url" yaml:"root_url" validate:"omitempty,url"`
		APIKey    string                       `json:"api_key" yaml:"api_key"`
		UserEmail string                       `json:"user_email" yaml:"user_email" validate:"omitempty,email"`
		Timeout   string                       `json:"timeout" yaml:"timeout"`
		MTLS      *apihelpers.CertificatePaths `json:"mtls" yaml:"mtls"`
	} `json:"discovery" yaml:"discovery"`
}

var conf config

var (
	localStore     *localstore.LocalStore
	draftDBService *surveydraftsDB.SurveyDraftsDBService
	draftStore     builder.DraftStore
	trashBin       *trash.Bin

	discoveryClient *discoveryclient.Client
	autosaveDelay   time.Duration
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Override secrets from environment variables
	secretsOverride()

	if err := validator.New().Struct(conf); err != nil {
		fmt.Println("Error validating config: " + err.Error())
		panic(err)
	}

	// Init logger:
	utils.InitLogger(conf.Logging)

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	autosaveDelay = readDuration("autosave.delay", conf.Autosave.Delay, builder.DEFAULT_AUTOSAVE_DELAY)

	initLocalStore()
	initDraftStore()
	initTrashBin()
	initDiscoveryClient()
}

func secretsOverride() {
	conf.DBConfigs.DraftDB.Username = utils.OverrideFromEnv(ENV_DRAFT_DB_USERNAME, conf.DBConfigs.DraftDB.Username)
	conf.DBConfigs.DraftDB.Password = utils.OverrideFromEnv(ENV_DRAFT_DB_PASSWORD, conf.DBConfigs.DraftDB.Password)
	conf.Discovery.APIKey = utils.OverrideFromEnv(ENV_DISCOVERY_API_KEY, conf.Discovery.APIKey)
	conf.GinConfig.Port = utils.OverrideFromEnv(ENV_BUILDER_LISTEN_PORT, conf.GinConfig.Port)

	// BUILDER_API_KEYS is a comma separated list of name:key pairs that replaces the configured clients
	if keys := os.Getenv(ENV_BUILDER_API_KEYS); keys != "" {
		conf.APIClients = parseAPIClients(keys)
	}
	for i, client := range conf.APIClients {
		conf.APIClients[i].Key = utils.OverrideFromEnv(utils.GenerateAPIClientKeyEnvVarName(client.Name), client.Key)
	}
}

func parseAPIClients(value string) []APIClient {
	clients := []APIClient{}
	for _, entry := range strings.Split(value, ",") {
		name, key, found := strings.Cut(strings.TrimSpace(entry), ":")
		if !found || name == "" || key == "" {
			continue
		}
		clients = append(clients, APIClient{Name: name, Key: key})
	}
	return clients
}

// apiKeyMap maps each key to its client name. Clients without key are skipped.
func apiKeyMap(clients []APIClient) map[string]string {
	keys := map[string]string{}
	for _, client := range clients {
		if client.Key == "" {
			slog.Warn("API client without key", slog.String("client", client.Name))
			continue
		}
		keys[client.Key] = client.Name
	}
	return keys
}

func readDuration(name string, value string, defaultValue time.Duration) time.Duration {
	if value == "" {
		return defaultValue
	}
	d, err := utils.ParseDurationString(value)
	if err != nil {
		slog.Error("Error reading config", slog.String("field", name), slog.String("error", err.Error()))
		panic(err)
	}
	return d
}

func initLocalStore() {
	storeConf := localstore.DefaultConfig(conf.LocalStore.Path)
	storeConf.GCInterval = readDuration("local_store.gc_interval", conf.LocalStore.GCInterval, storeConf.GCInterval)

	var err error
	localStore, err = localstore.Open(storeConf)
	if err != nil {
		slog.Error("Error opening local store", slog.String("error", err.Error()))
		panic(err)
	}
}

func initDraftStore() {
	switch conf.Autosave.Storage {
	case DRAFT_STORAGE_NONE:
		slog.Info("autosave disabled")
	case DRAFT_STORAGE_MONGO:
		if err := validator.New().Struct(conf.DBConfigs.DraftDB); err != nil {
			slog.Error("Error reading draft DB config", slog.String("error", err.Error()))
			panic(err)
		}
		dbConf, err := conf.DBConfigs.DraftDB.ToDBConfig()
		if err != nil {
			slog.Error("Error reading draft DB config", slog.String("error", err.Error()))
			panic(err)
		}
		draftDBService, err = surveydraftsDB.NewSurveyDraftsDBService(dbConf)
		if err != nil {
			slog.Error("Error connecting to draft DB", slog.String("error", err.Error()))
			panic(err)
		}
		draftStore = draftDBService
	default:
		draftStore = localStore
	}
}

func initTrashBin() {
	var err error
	trashBin, err = trash.Open(localStore)
	if err != nil {
		slog.Error("Error loading trash bin", slog.String("error", err.Error()))
		panic(err)
	}
}

func initDiscoveryClient() {
	if conf.Discovery.RootURL == "" {
		return
	}
	var err error
	discoveryClient, err = discoveryclient.NewClient(discoveryclient.Config{
		RootURL:              conf.Discovery.RootURL,
		APIKey:               conf.Discovery.APIKey,
		UserEmail:            conf.Discovery.UserEmail,
		Timeout:              readDuration("discovery.timeout", conf.Discovery.Timeout, discoveryclient.DEFAULT_TIMEOUT),
		MTLSCertificatePaths: conf.Discovery.MTLS,
	})
	if err != nil {
		slog.Error("Error creating discovery client", slog.String("error", err.Error()))
		panic(err)
	}
}
