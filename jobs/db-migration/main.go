package main

import (
	"log/slog"
	"time"
)

func main() {
	initJob()
	defer draftDBService.Close()

	dropIndexes()

	createIndexes()

	getIndexes()

	migrationTasks()
}

func dropIndexes() {
	switch conf.TaskConfigs.DropIndexes {
	case DropIndexesModeAll:
		draftDBService.DropIndexForDraftsCollection(true)
	case DropIndexesModeDefaults:
		draftDBService.DropIndexForDraftsCollection(false)
	}
}

func createIndexes() {
	if conf.TaskConfigs.CreateIndexes {
		draftDBService.CreateDefaultIndexesForDraftsCollection()
	}
}

func getIndexes() {
	if !conf.TaskConfigs.GetIndexes {
		return
	}
	indexes, err := draftDBService.GetIndexes()
	if err != nil {
		slog.Error("Error getting indexes", slog.String("error", err.Error()))
		return
	}
	for _, index := range indexes {
		slog.Info("draft DB index", slog.Any("index", index))
	}
}

func migrationTasks() {
	if localStore != nil {
		defer localStore.Close()

		start := time.Now()
		slog.Info("Importing local drafts")
		result, err := importDrafts(localStore, draftDBService, conf.TaskConfigs.MigrationTasks.ImportLocalDrafts.ClearImported)
		if err != nil {
			slog.Error("Error importing local drafts", slog.String("error", err.Error()))
		}
		slog.Info("Local drafts imported",
			slog.Int("imported", result.Imported),
			slog.Int("skipped", result.Skipped),
			slog.Int("failed", result.Failed),
			slog.String("duration", time.Since(start).String()),
		)
	}
}
