package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	shared "article-planner/app/shared"

	"github.com/jmoiron/sqlx"
)

const articleColumns = "id, query, h1, meta_title, meta_desc, status, created_at, updated_at"
const sectionColumns = "id, article_id, title, level, position, source_information, created_at, updated_at"

// ListArticles returns articles newest first, each with its ordered sections.
func ListArticles(ctx context.Context, params shared.ListArticlesParams) ([]*shared.Article, error) {
	qs := "SELECT " + articleColumns + " FROM articles WHERE 1=1"
	var qargs []interface{}

	if params.Status != "" {
		qs += " AND status = ?"
		qargs = append(qargs, string(params.Status))
	}

	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qs += " AND (LOWER(h1) LIKE ? OR LOWER(query) LIKE ?)"
		qargs = append(qargs, pattern, pattern)
	}

	qs += " ORDER BY created_at DESC, id DESC"

	var articles []*Article
	err := sqlx.SelectContext(ctx, Conn, &articles, Conn.Rebind(qs), qargs...)
	if err != nil {
		return nil, fmt.Errorf("error listing articles: %v", err)
	}

	if len(articles) == 0 {
		return []*shared.Article{}, nil
	}

	ids := make([]int64, len(articles))
	for i, a := range articles {
		ids[i] = a.Id
	}

	sectionsByArticle, err := getSectionsForArticles(ctx, Conn, ids)
	if err != nil {
		return nil, err
	}

	res := make([]*shared.Article, len(articles))
	for i, a := range articles {
		res[i] = a.ToApi(sectionsByArticle[a.Id])
	}

	return res, nil
}

// GetArticle returns nil, nil when the article doesn't exist.
func GetArticle(ctx context.Context, id int64) (*shared.Article, error) {
	return getArticle(ctx, Conn, id)
}

func getArticle(ctx context.Context, q sqlx.ExtContext, id int64) (*shared.Article, error) {
	var article Article
	err := sqlx.GetContext(ctx, q, &article, q.Rebind("SELECT "+articleColumns+" FROM articles WHERE id = ?"), id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting article: %v", err)
	}

	sectionsByArticle, err := getSectionsForArticles(ctx, q, []int64{id})
	if err != nil {
		return nil, err
	}

	return article.ToApi(sectionsByArticle[id]), nil
}

func getSectionsForArticles(ctx context.Context, q sqlx.ExtContext, articleIds []int64) (map[int64][]*Section, error) {
	query, args, err := sqlx.In("SELECT "+sectionColumns+" FROM sections WHERE article_id IN (?) ORDER BY article_id, position ASC, id ASC", articleIds)
	if err != nil {
		return nil, fmt.Errorf("error building sections query: %v", err)
	}

	var sections []*Section
	err = sqlx.SelectContext(ctx, q, &sections, q.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("error getting sections: %v", err)
	}

	res := make(map[int64][]*Section, len(articleIds))
	for _, s := range sections {
		res[s.ArticleId] = append(res[s.ArticleId], s)
	}

	return res, nil
}

func CreateArticle(ctx context.Context, fields ArticleFields, sections []SectionFields) (*shared.Article, error) {
	var article *shared.Article

	err := WithTx(ctx, "create article", func(tx *sqlx.Tx) error {
		id, err := insertArticle(ctx, tx, fields)
		if err != nil {
			return err
		}

		err = insertSections(ctx, tx, id, sections)
		if err != nil {
			return err
		}

		article, err = getArticle(ctx, tx, id)
		return err
	})

	if err != nil {
		return nil, err
	}

	log.Printf("created article %d with %d sections", article.Id, len(article.Sections))

	return article, nil
}

// UpsertArticle replaces the metadata and the whole section set of article
// id. A nil id, or an id that no longer exists, creates a new article.
func UpsertArticle(ctx context.Context, id *int64, fields ArticleFields, sections []SectionFields) (*shared.Article, error) {
	if id == nil {
		return CreateArticle(ctx, fields, sections)
	}

	var article *shared.Article

	err := WithTx(ctx, "upsert article", func(tx *sqlx.Tx) error {
		found, err := updateArticleFields(ctx, tx, *id, fields, true)
		if err != nil {
			return err
		}

		articleId := *id
		if !found {
			log.Printf("article %d not found, creating a new one", *id)
			articleId, err = insertArticle(ctx, tx, fields)
			if err != nil {
				return err
			}
		}

		err = replaceSections(ctx, tx, articleId, sections)
		if err != nil {
			return err
		}

		article, err = getArticle(ctx, tx, articleId)
		return err
	})

	if err != nil {
		return nil, err
	}

	return article, nil
}

// UpdateArticleDraft replaces metadata (not the query) and sections of an
// existing article. Returns nil, nil when the article doesn't exist.
func UpdateArticleDraft(ctx context.Context, id int64, fields ArticleFields, sections []SectionFields) (*shared.Article, error) {
	var article *shared.Article

	err := WithTx(ctx, "update article draft", func(tx *sqlx.Tx) error {
		found, err := updateArticleFields(ctx, tx, id, fields, false)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}

		err = replaceSections(ctx, tx, id, sections)
		if err != nil {
			return err
		}

		article, err = getArticle(ctx, tx, id)
		return err
	})

	if err != nil {
		return nil, err
	}

	return article, nil
}

// UpdateArticleStatus returns nil, nil when the article doesn't exist.
func UpdateArticleStatus(ctx context.Context, id int64, status shared.ArticleStatus) (*shared.Article, error) {
	res, err := Conn.ExecContext(ctx, Conn.Rebind("UPDATE articles SET status = ?, updated_at = ? WHERE id = ?"), string(status), now(), id)
	if err != nil {
		return nil, fmt.Errorf("error updating article status: %v", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error getting rows affected: %v", err)
	}
	if n == 0 {
		return nil, nil
	}

	return GetArticle(ctx, id)
}

// DeleteArticles removes the given articles and all of their sections, or
// nothing at all if any statement fails.
func DeleteArticles(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	return WithTx(ctx, "delete articles", func(tx *sqlx.Tx) error {
		query, args, err := sqlx.In("DELETE FROM sections WHERE article_id IN (?)", ids)
		if err != nil {
			return fmt.Errorf("error building sections delete: %v", err)
		}
		_, err = tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return fmt.Errorf("error deleting sections: %v", err)
		}

		query, args, err = sqlx.In("DELETE FROM articles WHERE id IN (?)", ids)
		if err != nil {
			return fmt.Errorf("error building articles delete: %v", err)
		}
		res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return fmt.Errorf("error deleting articles: %v", err)
		}

		n, _ := res.RowsAffected()
		log.Printf("deleted %d of %d requested articles", n, len(ids))

		return nil
	})
}

func insertArticle(ctx context.Context, tx *sqlx.Tx, fields ArticleFields) (int64, error) {
	ts := now()

	var id int64
	err := tx.QueryRowxContext(ctx, tx.Rebind(`INSERT INTO articles (query, h1, meta_title, meta_desc, status, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	RETURNING id`),
		fields.Query,
		fields.H1,
		fields.MetaTitle,
		fields.MetaDesc,
		string(shared.ArticleStatusDraft),
		ts,
		ts,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating article: %v", err)
	}

	return id, nil
}

func updateArticleFields(ctx context.Context, tx *sqlx.Tx, id int64, fields ArticleFields, withQuery bool) (bool, error) {
	var res sql.Result
	var err error

	if withQuery && fields.Query != "" {
		res, err = tx.ExecContext(ctx, tx.Rebind("UPDATE articles SET query = ?, h1 = ?, meta_title = ?, meta_desc = ?, updated_at = ? WHERE id = ?"),
			fields.Query, fields.H1, fields.MetaTitle, fields.MetaDesc, now(), id)
	} else {
		res, err = tx.ExecContext(ctx, tx.Rebind("UPDATE articles SET h1 = ?, meta_title = ?, meta_desc = ?, updated_at = ? WHERE id = ?"),
			fields.H1, fields.MetaTitle, fields.MetaDesc, now(), id)
	}
	if err != nil {
		return false, fmt.Errorf("error updating article: %v", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error getting rows affected: %v", err)
	}

	return n > 0, nil
}

func replaceSections(ctx context.Context, tx *sqlx.Tx, articleId int64, sections []SectionFields) error {
	_, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM sections WHERE article_id = ?"), articleId)
	if err != nil {
		return fmt.Errorf("error deleting sections: %v", err)
	}

	return insertSections(ctx, tx, articleId, sections)
}

func insertSections(ctx context.Context, tx *sqlx.Tx, articleId int64, sections []SectionFields) error {
	ts := now()

	for i, s := range sections {
		var info sql.NullString
		if s.SourceInformation != nil {
			info = sql.NullString{String: *s.SourceInformation, Valid: true}
		}

		_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO sections (article_id, title, level, position, source_information, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
			articleId, s.Title, s.Level, i, info, ts, ts)

		if err != nil {
			return fmt.Errorf("error inserting section %d: %v", i, err)
		}
	}

	return nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
