package sqlinline

const QInsertPromise = `--sql 3f6f1c0a-8c2e-4a5b-9b1d-6f4f0c92e7a1
insert into promises(id, creator, title, description, category, media_ref, asset, amount_requested, visible, created_at)
values ($1::bigint, $2::text, $3::text, $4::text, $5::text, $6::text, $7::text, $8::numeric, $9::boolean, now())
on conflict (id) do nothing;
`

const QMarkFulfilled = `--sql 5b0d9d64-21c7-4de0-8a3a-2f9a7c51e0b3
update promises set fulfilled = true, fulfiller = $2::text, updated_at = now()
where id = $1::bigint;
`
