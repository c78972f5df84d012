package seeds

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Setup populates the books table with deterministic fixture data for
// local development of the Postgres catalog source.
func Setup(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Info().Msg("seed: truncating existing data")
	if _, err := pool.Exec(ctx, `TRUNCATE books RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Info().Msg("seed: inserting books")
	if err := seedBooks(ctx, pool, rng, 60); err != nil {
		return fmt.Errorf("seed books: %w", err)
	}

	log.Info().Msg("seed: complete")
	return nil
}

func seedBooks(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	genres := []string{"Fantasy", "Science Fiction", "Mystery", "Romance", "Classics"}
	titles := map[string][]string{
		"Fantasy": {
			"The Name of the Wind", "A Game of Thrones", "The Way of Kings",
			"Mistborn", "The Hobbit", "Assassin's Apprentice",
			"The Lies of Locke Lamora", "The Blade Itself",
		},
		"Science Fiction": {
			"Dune", "Hyperion", "Ender's Game", "Foundation",
			"The Left Hand of Darkness", "Snow Crash", "Neuromancer",
			"The Dispossessed",
		},
		"Mystery": {
			"The Girl with the Dragon Tattoo", "Gone Girl", "Big Little Lies",
			"In the Woods", "The Silent Patient", "And Then There Were None",
			"The Da Vinci Code", "Rebecca",
		},
		"Romance": {
			"Pride and Prejudice", "Outlander", "The Notebook",
			"Me Before You", "Red, White and Royal Blue", "Beach Read",
			"The Hating Game", "Eleanor Oliphant Is Completely Fine",
		},
		"Classics": {
			"1984", "To Kill a Mockingbird", "The Great Gatsby",
			"Jane Eyre", "Wuthering Heights", "Crime and Punishment",
			"Moby-Dick", "Brave New World",
		},
	}
	authors := []string{
		"Patrick Rothfuss", "Ursula K. Le Guin", "Agatha Christie",
		"Jane Austen", "George Orwell", "Brandon Sanderson",
		"Tana French", "Frank Herbert", "Daphne du Maurier",
		"Gillian Flynn", "Herman Melville", "Charlotte Bronte",
	}

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		genre := genres[i%len(genres)]
		titleList := titles[genre]
		title := titleList[i%len(titleList)]
		if i >= len(genres)*len(titleList) {
			title = fmt.Sprintf("%s, Vol. %d", title, i/(len(genres)*len(titleList))+1)
		}

		author := authors[rng.Intn(len(authors))]
		bookGenres := []string{genre}
		if rng.Float64() < 0.4 {
			other := genres[rng.Intn(len(genres))]
			if other != genre {
				bookGenres = append(bookGenres, other)
			}
		}

		numRatings := int64(powerLawScore(rng) * 1_000_000)
		numReviews := numRatings / 20
		rating := math.Round((3.0+rng.Float64()*2.0)*100) / 100
		pages := float64(150 + rng.Intn(750))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args, title, author, bookGenres, numRatings, numReviews, rating, pages)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO books (title, author, genres, num_ratings, num_reviews, average_rating, num_pages) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func powerLawScore(rng *rand.Rand) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.001
	}
	raw := math.Pow(u, 2.0)
	if raw < 0.01 {
		raw = 0.01
	}
	return math.Round(raw*100) / 100
}
