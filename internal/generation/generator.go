// Package generation synthesizes candidate records for round-trip testing.
package generation

import (
	"fmt"
	"math/rand"

	"github.com/jonathan/ats-probe/internal/types"
)

// Result holds a generated candidate record plus provenance for telemetry.
// Model and TokensUsed are populated only by the LLM generator.
type Result struct {
	Record     *types.CandidateRecord
	Model      string
	TokensUsed int
}

// Fixed pools for deterministic synthesis. Generation is seeded: the same
// seed always produces the same record, so expected field maps are stable
// across runs and across concurrent units.
var (
	firstNames = []string{"Jane", "John", "Maria", "Wei", "Aisha", "Carlos", "Emma", "Noah", "Priya", "Liam"}
	lastNames  = []string{"Doe", "Smith", "Garcia", "Chen", "Okafor", "Martinez", "Johnson", "Patel", "Kim", "Brown"}
	companies  = []string{"Acme Corp", "Globex", "Initech", "Umbrella Labs", "Stark Industries", "Wayne Enterprises", "Hooli", "Vandelay Industries"}
	roles      = []string{"Software Engineer", "Senior Software Engineer", "Data Engineer", "Platform Engineer", "Engineering Manager", "Site Reliability Engineer"}
	schools    = []string{"State University", "Tech Institute", "City College", "National University"}
	degrees    = []string{"B.S.", "M.S."}
	fieldsOf   = []string{"Computer Science", "Software Engineering", "Information Systems", "Electrical Engineering"}
	skillPool  = []string{"Go", "Python", "PostgreSQL", "Kubernetes", "Docker", "AWS", "Terraform", "gRPC", "Kafka", "Redis", "React", "TypeScript"}
	verbs      = []string{"Built", "Designed", "Led", "Migrated", "Automated", "Optimized"}
	objects    = []string{"a distributed ingestion service", "the CI/CD platform", "a real-time analytics pipeline", "the internal API gateway", "a multi-region deployment system"}
	outcomes   = []string{"cutting p99 latency by 40%", "reducing infrastructure cost by 25%", "serving 2M requests per day", "shrinking release time from days to hours"}
)

// Generate deterministically synthesizes a candidate record from a seed.
// The record always satisfies the CandidateRecord invariant: name, email,
// and phone are non-empty.
func Generate(seed int64) *types.CandidateRecord {
	rng := rand.New(rand.NewSource(seed))

	first := pick(rng, firstNames)
	last := pick(rng, lastNames)

	rec := &types.CandidateRecord{
		Name:  first + " " + last,
		Email: fmt.Sprintf("%s.%s%d@example.com", lower(first), lower(last), rng.Intn(90)+10),
		Phone: fmt.Sprintf("(%03d) %03d-%04d", rng.Intn(800)+200, rng.Intn(800)+200, rng.Intn(10000)),
	}

	nExp := rng.Intn(2) + 2
	year := 2024
	for i := 0; i < nExp; i++ {
		span := rng.Intn(3) + 1
		end := fmt.Sprintf("%02d/%d", rng.Intn(12)+1, year)
		start := fmt.Sprintf("%02d/%d", rng.Intn(12)+1, year-span)
		year -= span + 1

		nBullets := rng.Intn(2) + 2
		bullets := make([]string, 0, nBullets)
		for j := 0; j < nBullets; j++ {
			bullets = append(bullets, fmt.Sprintf("%s %s, %s", pick(rng, verbs), pick(rng, objects), pick(rng, outcomes)))
		}

		rec.Experience = append(rec.Experience, types.ExperienceEntry{
			Company:   pick(rng, companies),
			Role:      pick(rng, roles),
			StartDate: start,
			EndDate:   end,
			Bullets:   bullets,
		})
	}

	rec.Education = append(rec.Education, types.EducationEntry{
		School:    pick(rng, schools),
		Degree:    pick(rng, degrees),
		Field:     pick(rng, fieldsOf),
		StartDate: fmt.Sprintf("09/%d", year-4),
		EndDate:   fmt.Sprintf("06/%d", year),
	})

	nSkills := rng.Intn(3) + 4
	seen := make(map[string]bool)
	for len(rec.Skills) < nSkills {
		s := pick(rng, skillPool)
		if !seen[s] {
			seen[s] = true
			rec.Skills = append(rec.Skills, s)
		}
	}

	return rec
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

func lower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
