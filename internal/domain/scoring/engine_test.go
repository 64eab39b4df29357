package scoring_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/okian/introscore/internal/domain/model"
	"github.com/okian/introscore/internal/domain/rubric"
	scoring "github.com/okian/introscore/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleIntro = "Hello everyone, good morning. My name is Riya and my age is 13. " +
	"I study in class 8 at Green Valley School. My family has four members. " +
	"My hobbies are reading and playing cricket, and my favourite subject is science. " +
	"A fun fact about me is that I can solve a cube quickly. Thank you for listening."

type fixedScorer struct {
	criterion rubric.Criterion
	score     int
	weight    int
	err       error
	calls     *atomic.Int32
}

func (f fixedScorer) Criterion() rubric.Criterion { return f.criterion }

func (f fixedScorer) Score(_ context.Context, _ model.Transcript) (scoring.Result, error) {
	if f.calls != nil {
		f.calls.Add(1)
	}
	if f.err != nil {
		return scoring.Result{}, f.err
	}
	return scoring.Result{Criterion: f.criterion, Score: f.score, Weight: f.weight, Feedback: "fixed"}, nil
}

func fixedScorers(calls *atomic.Int32, content, flow, vocab, grammar, clarity int) []scoring.Scorer {
	return []scoring.Scorer{
		fixedScorer{criterion: rubric.Content, score: content, weight: 99, calls: calls},
		fixedScorer{criterion: rubric.Flow, score: flow, weight: 99, calls: calls},
		fixedScorer{criterion: rubric.Vocabulary, score: vocab, weight: 99, calls: calls},
		fixedScorer{criterion: rubric.Grammar, score: grammar, weight: 99, calls: calls},
		fixedScorer{criterion: rubric.Clarity, score: clarity, weight: 99, calls: calls},
	}
}

func TestEngine_Validation(t *testing.T) {
	Convey("Given an engine with counting scorers", t, func() {
		var calls atomic.Int32
		engine := scoring.NewEngine(scoring.WithScorers(fixedScorers(&calls, 100, 100, 100, 100, 100)...))
		ctx := context.Background()

		Convey("When the transcript has fewer than 10 words", func() {
			for _, text := range []string{"", "   ", "Hi, I am Sam.", words(9), "one, two; three! four? five six seven eight nine."} {
				_, err := engine.Score(ctx, text)
				So(errors.Is(err, scoring.ErrInputTooShort), ShouldBeTrue)
			}

			Convey("Then no scorer is invoked", func() {
				So(calls.Load(), ShouldEqual, 0)
			})
		})

		Convey("When a nine-word transcript contains accented names", func() {
			_, err := engine.Score(ctx, "Hello my name is Zoë and I like chess")

			Convey("Then it is rejected without invoking any scorer", func() {
				So(errors.Is(err, scoring.ErrInputTooShort), ShouldBeTrue)
				So(calls.Load(), ShouldEqual, 0)
			})
		})

		Convey("When the transcript has exactly 10 words", func() {
			report, err := engine.Score(ctx, words(10))

			Convey("Then every scorer runs once", func() {
				So(err, ShouldBeNil)
				So(report.WordCount, ShouldEqual, 10)
				So(calls.Load(), ShouldEqual, 5)
			})
		})

		Convey("When a custom minimum is configured", func() {
			strict := scoring.NewEngine(scoring.WithMinWords(20), scoring.WithScorers(fixedScorers(&calls, 0, 0, 0, 0, 0)...))
			_, err := strict.Score(ctx, words(15))
			So(errors.Is(err, scoring.ErrInputTooShort), ShouldBeTrue)
			So(strict.MinWords(), ShouldEqual, 20)
		})
	})
}

func TestEngine_Weighting(t *testing.T) {
	Convey("Given fixed criterion scores", t, func() {
		ctx := context.Background()
		score := func(c, f, v, g, cl int) int {
			report, err := scoring.NewEngine(scoring.WithScorers(fixedScorers(nil, c, f, v, g, cl)...)).Score(ctx, sampleIntro)
			So(err, ShouldBeNil)
			return report.OverallScore
		}

		Convey("Then all hundreds give 100 and all zeros give 0", func() {
			So(score(100, 100, 100, 100, 100), ShouldEqual, 100)
			So(score(0, 0, 0, 0, 0), ShouldEqual, 0)
		})

		Convey("Then mixed scores follow the fixed weights", func() {
			// (60×30 + 50×5 + 80×10 + 90×10 + 80×5) / 60 = 4150/60 ≈ 69.17
			So(score(60, 50, 80, 90, 80), ShouldEqual, 69)
		})

		Convey("Then self-reported weights are ignored", func() {
			report, err := scoring.NewEngine(scoring.WithScorers(fixedScorers(nil, 60, 50, 80, 90, 80)...)).Score(ctx, sampleIntro)
			So(err, ShouldBeNil)
			weights := []int{}
			for _, c := range report.PerCriterion {
				weights = append(weights, c.Weight)
			}
			So(weights, ShouldResemble, []int{30, 5, 10, 10, 5})
			So(report.TotalPossibleWeight, ShouldEqual, 60)
			So(report.PerCriterion[0].Contribution(), ShouldAlmostEqual, 18.0)
		})

		Convey("Then the overall score stays within [0,100] for any in-range scores", func() {
			steps := []int{0, 25, 50, 75, 100}
			for _, c := range steps {
				for _, f := range steps {
					for _, v := range steps {
						for _, g := range steps {
							for _, cl := range steps {
								r := scoring.Combine(10, []scoring.Result{
									{Criterion: rubric.Content, Score: c},
									{Criterion: rubric.Flow, Score: f},
									{Criterion: rubric.Vocabulary, Score: v},
									{Criterion: rubric.Grammar, Score: g},
									{Criterion: rubric.Clarity, Score: cl},
								})
								So(r.OverallScore, ShouldBeBetweenOrEqual, 0, 100)
							}
						}
					}
				}
			}
		})

		Convey("Then out-of-range inputs are clamped", func() {
			So(score(150, 150, 150, 150, 150), ShouldEqual, 100)
			So(score(-10, -10, -10, -10, -10), ShouldEqual, 0)
		})

		Convey("Then unknown criteria contribute nothing", func() {
			r := scoring.Combine(12, []scoring.Result{{Criterion: "charisma", Score: 100, Weight: 60}})
			So(r.OverallScore, ShouldEqual, 0)
			So(r.PerCriterion[0].Weight, ShouldEqual, 0)
		})
	})
}

func TestEngine_Errors(t *testing.T) {
	Convey("Given a scorer that fails", t, func() {
		boom := errors.New("grammar backend exploded")
		scorers := fixedScorers(nil, 100, 100, 100, 100, 100)
		scorers[3] = fixedScorer{criterion: rubric.Grammar, err: boom}
		engine := scoring.NewEngine(scoring.WithScorers(scorers...))

		Convey("When scoring", func() {
			_, err := engine.Score(context.Background(), sampleIntro)

			Convey("Then the error propagates with the criterion", func() {
				So(errors.Is(err, boom), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "score grammar")
			})
		})
	})
}

func TestEngine_Rubric(t *testing.T) {
	Convey("Given the default rubric engine", t, func() {
		ctx := context.Background()

		Convey("When no collaborators are injected", func() {
			engine := scoring.NewEngine()
			report, err := engine.Score(ctx, sampleIntro)

			Convey("Then flow and grammar run degraded", func() {
				So(err, ShouldBeNil)
				So(engine.Availability(), ShouldResemble, scoring.Availability{})
				So(report.PerCriterion, ShouldHaveLength, 5)
				So(report.PerCriterion[1].ID, ShouldEqual, "flow")
				So(report.PerCriterion[1].Score, ShouldEqual, 50)
				So(report.PerCriterion[3].ID, ShouldEqual, "grammar")
				So(report.PerCriterion[3].Score, ShouldEqual, 50)
				So(report.OverallScore, ShouldBeBetweenOrEqual, 0, 100)
			})
		})

		Convey("When collaborators are injected", func() {
			emb := &fakeEmbedder{vectors: [][]float64{{3, 4}, {4, 3}}}
			checker := &fakeChecker{issues: issues(1)}
			engine := scoring.NewEngine(scoring.WithEmbedder(emb), scoring.WithGrammarChecker(checker))
			report, err := engine.Score(ctx, sampleIntro)

			Convey("Then each collaborator is called once and the report is ordered", func() {
				So(err, ShouldBeNil)
				So(engine.Availability(), ShouldResemble, scoring.Availability{Embedding: true, Grammar: true})
				So(emb.calls.Load(), ShouldEqual, 1)
				So(checker.calls.Load(), ShouldEqual, 1)
				ids := []string{}
				for _, c := range report.PerCriterion {
					ids = append(ids, c.ID)
				}
				So(ids, ShouldResemble, []string{"content", "flow", "vocabulary", "grammar", "clarity"})
				So(report.PerCriterion[1].Score, ShouldEqual, 70)
				So(report.PerCriterion[0].Name, ShouldEqual, "Key Content Presence")
			})
		})
	})
}
