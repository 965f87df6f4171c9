package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/case-framework/discovery-builder/pkg/db"
	"github.com/case-framework/discovery-builder/pkg/db/localstore"
	"github.com/case-framework/discovery-builder/pkg/utils"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	surveydraftsDB "github.com/case-framework/discovery-builder/pkg/db/survey-drafts"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_DRAFT_DB_USERNAME = "DRAFT_DB_USERNAME"
	ENV_DRAFT_DB_PASSWORD = "DRAFT_DB_PASSWORD"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		DraftDB db.DBConfigYaml `json:"draft_db" yaml:"draft_db"`
	} `json:"db_configs" yaml:"db_configs"`

	// Task configurations
	TaskConfigs TaskConfigs `json:"task_configs" yaml:"task_configs"`
}

type TaskConfigs struct {
	DropIndexes    DropIndexesMode      `json:"drop_indexes" yaml:"drop_indexes" validate:"omitempty,oneof=all defaults none"`
	CreateIndexes  bool                 `json:"create_indexes" yaml:"create_indexes"`
	GetIndexes     bool                 `json:"get_indexes" yaml:"get_indexes"`
	MigrationTasks MigrationTasksConfig `json:"migration_tasks" yaml:"migration_tasks"`
}

type MigrationTasksConfig struct {
	// ImportLocalDrafts copies the drafts of a local store into the draft DB
	ImportLocalDrafts struct {
		LocalStorePath string `json:"local_store_path" yaml:"local_store_path"`
		ClearImported  bool   `json:"clear_imported" yaml:"clear_imported"`
	} `json:"import_local_drafts" yaml:"import_local_drafts"`
}

type DropIndexesMode string

const (
	DropIndexesModeAll      DropIndexesMode = "all"
	DropIndexesModeDefaults DropIndexesMode = "defaults"
	DropIndexesModeNone     DropIndexesMode = "none"
)

var conf config

var (
	draftDBService *surveydraftsDB.SurveyDraftsDBService
	localStore     *localstore.LocalStore
)

func initJob() {
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
		panic(fmt.Sprintf("invalid config: %s", err.Error()))
	}

	// Init logger:
	utils.InitLogger(conf.Logging)

	// init db
	initDBs()
}

func secretsOverride() {
	conf.DBConfigs.DraftDB.Username = utils.OverrideFromEnv(ENV_DRAFT_DB_USERNAME, conf.DBConfigs.DraftDB.Username)
	conf.DBConfigs.DraftDB.Password = utils.OverrideFromEnv(ENV_DRAFT_DB_PASSWORD, conf.DBConfigs.DraftDB.Password)
}

func initDBs() {
	dbConf, err := conf.DBConfigs.DraftDB.ToDBConfig()
	if err != nil {
		slog.Error("Error reading draft DB config", slog.String("error", err.Error()))
		panic(err)
	}
	// indexes are handled by the tasks
	dbConf.RunIndexCreation = false

	draftDBService, err = surveydraftsDB.NewSurveyDraftsDBService(dbConf)
	if err != nil {
		slog.Error("Error connecting to draft DB", slog.String("error", err.Error()))
		panic(err)
	}

	if path := conf.TaskConfigs.MigrationTasks.ImportLocalDrafts.LocalStorePath; path != "" {
		storeConf := localstore.DefaultConfig(path)
		storeConf.GCInterval = 0
		localStore, err = localstore.Open(storeConf)
		if err != nil {
			slog.Error("Error opening local store", slog.String("error", err.Error()))
			panic(err)
		}
	}
}
