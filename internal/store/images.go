// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package store

import "context"

const listReferencedImageURLs = `
SELECT image_url FROM projects WHERE image_url != ''
UNION
SELECT client_image_url FROM testimonials WHERE client_image_url != ''
UNION
SELECT featured_image_url FROM blog_posts WHERE featured_image_url != ''
`

// ListReferencedImageURLs returns every image URL currently referenced by
// content rows. The upload janitor uses this set to decide which stored
// files are orphaned.
func (q *Queries) ListReferencedImageURLs(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listReferencedImageURLs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}
