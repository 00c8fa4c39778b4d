package sqlinline

const QInsertDonation = `--sql 9b79c57c-3615-48a2-9d85-3426d5b3f7eb
insert into donations(id, promise_id, donor, asset, gross, fee, net, properties, created_at)
values (gen_random_uuid(), $1::bigint, $2::text, $3::text, $4::numeric, $5::numeric, $6::numeric, coalesce($7::jsonb, '{}'::jsonb), now());
`

const QListDonations = `--sql 7a08e4f6-cb8a-42c4-bd7f-291d6e913edc
select id, promise_id, donor, asset, gross::text, fee::text, net::text, properties, created_at
from donations
order by created_at desc
limit $1::int;
`
