package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/grexie/classifier/pkg/dataset"
	"github.com/grexie/classifier/pkg/db"
	"github.com/grexie/classifier/pkg/model"
	"github.com/grexie/classifier/pkg/report"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/joho/godotenv"
	"github.com/syndtr/goleveldb/leveldb"
)

func loadEnv(filenames ...string) {
	for _, filename := range filenames {
		if s, err := os.Stat(filename); err == nil && !s.IsDir() {
			godotenv.Load(filename)
		}
	}
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	if _, ok := os.LookupEnv("ENV"); !ok {
		env := "development"
		os.Setenv("ENV", env)
	}
	loadEnv(".env."+os.Getenv("ENV")+".local", ".env."+os.Getenv("ENV"), ".env.local", ".env")

	params := model.NewModelParamsFromDefaults()
	params.Write(os.Stdout, "Model Config")

	header, err := dataset.ParseHeaderMode(params.Header)
	if err != nil {
		log.Fatalf("error parsing env.CLASSIFIER_HEADER: %v", err)
	}

	var cache *leveldb.DB
	if path := model.CachePath(); path != "" && dataset.IsRemote(params.Dataset) {
		if cache, err = leveldb.OpenFile(path, nil); err != nil {
			log.Fatalf("failed to open dataset cache: %v", err)
		}
		defer cache.Close()
	}

	pw := progress.NewWriter()
	pw.SetMessageLength(40)
	pw.SetNumTrackersExpected(2)
	pw.SetSortBy(progress.SortByPercentDsc)
	pw.SetStyle(progress.StyleDefault)
	pw.SetTrackerLength(15)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetUpdateFrequency(time.Millisecond * 100)
	pw.Style().Colors = progress.StyleColorsExample
	pw.Style().Options.PercentFormat = "%2.0f%%"
	go pw.Render()

	stop := func() {
		pw.Stop()
		for pw.IsRenderInProgress() {
			time.Sleep(100 * time.Millisecond)
		}
	}

	ds, err := dataset.Load(context.Background(), pw, dataset.NewFetcher(nil, cache), params.Dataset, header)
	if err != nil {
		stop()
		log.Fatalf("error loading dataset: %v", err)
	}

	m, err := model.NewModel(pw, ds, params)
	stop()
	if err != nil {
		log.Fatalf("error training model: %v", err)
	}

	log.Printf("loaded %d samples with %d features, %d classes", ds.Len(), ds.Width(), m.Vocabulary.Len())
	log.Printf("final training loss: %.6f", m.History.Final())

	if err := m.Metrics.Write(os.Stdout); err != nil {
		log.Fatalf("error writing metrics: %v", err)
	}

	if path := model.LossCSV(); path != "" {
		if err := writeFile(path, func(f *os.File) error {
			return report.WriteLossCSV(f, m.History)
		}); err != nil {
			log.Fatalf("error writing loss csv: %v", err)
		}
		if err := writeFile(path+".summary.csv", func(f *os.File) error {
			return report.WriteLossSummaryCSV(f, m.History, max(1, params.Steps/10))
		}); err != nil {
			log.Fatalf("error writing loss summary csv: %v", err)
		}
		log.Printf("wrote loss history to %s", path)
	}

	if path := model.ConfusionCSV(); path != "" {
		if err := writeFile(path, func(f *os.File) error {
			return report.WriteConfusionCSV(f, m.Metrics.Confusion)
		}); err != nil {
			log.Fatalf("error writing confusion csv: %v", err)
		}
		log.Printf("wrote confusion matrix to %s", path)
	}

	if mongoUrl, ok := os.LookupEnv("MONGO_URL"); ok && mongoUrl != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		database, err := db.ConnectMongo(ctx, mongoUrl)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer database.Client().Disconnect(context.Background())

		r := db.NewReport(m, time.Now())
		if err := db.SaveReport(ctx, database, r, os.Getenv("MONGO_SUPPORTS_TRANSACTIONS") == "true"); err != nil {
			log.Fatalf("error saving run report: %v", err)
		}
		log.Printf("saved run %s", r.Run.ID.Hex())
	}
}
