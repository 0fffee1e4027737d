package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/kotoba/internal/content"
)

// choiceBatch bounds the number of bind variables per choices query.
const choiceBatch = 500

var questionColumns = []string{"id", "group_key", "item_number", "section", "stem", "passage"}

// contentRepo implements ContentRepo with the ent SQL builder.
type contentRepo struct {
	db *sql.DB
}

func (r *contentRepo) ExamQuestions(ctx context.Context, q content.ExamQuery) ([]content.Question, error) {
	levels := make([]any, len(q.Levels))
	for i, l := range q.Levels {
		levels[i] = string(l)
	}
	sections := make([]any, len(q.Sections))
	for i, s := range q.Sections {
		sections[i] = string(s)
	}

	sel := builder().Select(questionColumns...).
		From(builder().Table(tableQuestions)).
		Where(entsql.And(
			entsql.EQ("mode", modeExam),
			entsql.In("level", levels...),
			entsql.In("section", sections...),
		))
	if q.Year != 0 {
		sel.Where(entsql.EQ("year", q.Year))
	}
	if q.Month != "" {
		sel.Where(entsql.EQ("month", string(q.Month)))
	}
	sel.OrderBy("group_key", "item_number", "id")

	return r.queryQuestions(ctx, sel)
}

func (r *contentRepo) GroupQuestions(ctx context.Context, groupKey string) ([]content.Question, error) {
	sel := builder().Select(questionColumns...).
		From(builder().Table(tableQuestions)).
		Where(entsql.EQ("group_key", groupKey)).
		OrderBy("item_number", "id")
	return r.queryQuestions(ctx, sel)
}

func (r *contentRepo) queryQuestions(ctx context.Context, sel *entsql.Selector) ([]content.Question, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}

	var (
		out []content.Question
		ids []int64
	)
	for rows.Next() {
		var (
			id      int64
			q       content.Question
			section string
			passage sql.NullString
		)
		if err := rows.Scan(&id, &q.GroupKey, &q.ItemNumber, &section, &q.Stem, &passage); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Section = content.Section(section)
		if passage.Valid {
			q.Passage = &passage.String
		}
		out = append(out, q)
		ids = append(ids, id)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	choices, err := r.loadChoices(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Choices = choices[ids[i]]
	}
	return out, nil
}

func (r *contentRepo) loadChoices(ctx context.Context, ids []int64) (map[int64][]content.Choice, error) {
	out := make(map[int64][]content.Choice, len(ids))
	for start := 0; start < len(ids); start += choiceBatch {
		batch := ids[start:min(start+choiceBatch, len(ids))]
		args := make([]any, len(batch))
		for i, id := range batch {
			args[i] = id
		}

		query, qargs := builder().
			Select("question_id", "position", "content", "is_correct", "explanation").
			From(builder().Table(tableChoices)).
			Where(entsql.In("question_id", args...)).
			OrderBy("question_id", "position").
			Query()

		if err := r.scanChoices(ctx, query, qargs, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *contentRepo) scanChoices(ctx context.Context, query string, args []any, into map[int64][]content.Choice) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query choices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			qid         int64
			c           content.Choice
			explanation sql.NullString
		)
		if err := rows.Scan(&qid, &c.Position, &c.Content, &c.IsCorrect, &explanation); err != nil {
			return fmt.Errorf("scan choice: %w", err)
		}
		if explanation.Valid {
			c.Explanation = &explanation.String
		}
		into[qid] = append(into[qid], c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate choices: %w", err)
	}
	return nil
}

func (r *contentRepo) Import(ctx context.Context, cat *content.Catalog) (ImportResult, error) {
	var res ImportResult

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, g := range cat.Groups {
		group, ok := content.ParseGroupKey(g.GroupKey)
		if !ok {
			return ImportResult{}, fmt.Errorf("import %s: %w", g.GroupKey, content.ErrInvalidCatalog)
		}
		if err := deleteGroup(ctx, tx, g.GroupKey); err != nil {
			return ImportResult{}, err
		}
		for _, q := range g.ToQuestions() {
			if err := insertQuestion(ctx, tx, group, q); err != nil {
				return ImportResult{}, err
			}
			res.Questions++
			res.Choices += len(q.Choices)
		}
		res.Groups++
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("commit import: %w", err)
	}
	return res, nil
}

func deleteGroup(ctx context.Context, tx *sql.Tx, groupKey string) error {
	ids := builder().Select("id").
		From(builder().Table(tableQuestions)).
		Where(entsql.EQ("group_key", groupKey))

	query, args := builder().Delete(tableChoices).
		Where(entsql.In("question_id", ids)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete choices for %s: %w", groupKey, err)
	}

	query, args = builder().Delete(tableQuestions).
		Where(entsql.EQ("group_key", groupKey)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete questions for %s: %w", groupKey, err)
	}
	return nil
}

func insertQuestion(ctx context.Context, tx *sql.Tx, g content.Group, q content.Question) error {
	var (
		mode  = modeDaily
		year  any
		month any
	)
	if g.Exam != nil {
		mode = modeExam
		year = g.Exam.Year
		month = string(g.Exam.Month)
	}
	var passage any
	if q.Passage != nil {
		passage = *q.Passage
	}

	query, args := builder().Insert(tableQuestions).
		Columns("group_key", "mode", "level", "year", "month", "item_number", "section", "stem", "passage").
		Values(q.GroupKey, mode, string(g.Level), year, month, q.ItemNumber, string(q.Section), q.Stem, passage).
		Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert %s item %d: %w", q.GroupKey, q.ItemNumber, err)
	}
	qid, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert %s item %d: %w", q.GroupKey, q.ItemNumber, err)
	}

	if len(q.Choices) == 0 {
		return nil
	}
	ins := builder().Insert(tableChoices).
		Columns("question_id", "position", "content", "is_correct", "explanation")
	for _, c := range q.Choices {
		var explanation any
		if c.Explanation != nil {
			explanation = *c.Explanation
		}
		ins.Values(qid, c.Position, c.Content, c.IsCorrect, explanation)
	}
	query, args = ins.Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert choices for %s item %d: %w", q.GroupKey, q.ItemNumber, err)
	}
	return nil
}

func (r *contentRepo) Groups(ctx context.Context) ([]GroupInfo, error) {
	query, args := builder().
		Select("group_key", "mode", "level", entsql.Count("*")).
		From(builder().Table(tableQuestions)).
		GroupBy("group_key", "mode", "level").
		OrderBy("group_key").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	var out []GroupInfo
	for rows.Next() {
		var g GroupInfo
		if err := rows.Scan(&g.Key, &g.Mode, &g.Level, &g.Questions); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return out, nil
}
