package service

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const slugMaxAttempts = 1000

// SlugCounter 统计已存在的 slug 数量
type SlugCounter func(slug string) (int64, error)

var turkishLower = cases.Lower(language.Turkish)

// Slugify 将名称转为 URL 友好的 slug（土耳其字符折叠为 ASCII）
func Slugify(name string) string {
	lowered := turkishLower.String(strings.TrimSpace(name))
	lowered = strings.NewReplacer("ı", "i", "ß", "ss", "æ", "ae", "ø", "o").Replace(lowered)

	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, lowered)
	if err != nil {
		folded = lowered
	}

	var b strings.Builder
	lastDash := true
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// NormalizeSlug 校验并规范化手工填写的 slug
func NormalizeSlug(raw string) (string, error) {
	slug := Slugify(raw)
	if slug == "" {
		return "", ErrSlugInvalid
	}
	return slug, nil
}

// UniqueSlug 由名称生成唯一 slug，冲突时依次追加 -1、-2
func UniqueSlug(name string, count SlugCounter) (string, error) {
	base := Slugify(name)
	if base == "" {
		return "", ErrSlugInvalid
	}
	candidate := base
	for i := 1; i <= slugMaxAttempts; i++ {
		n, err := count(candidate)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", ErrSlugExists
}
