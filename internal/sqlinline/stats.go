package sqlinline

const QStatsSummary = `--sql c4f0a9d2-7e3b-4b8f-a1c6-08d5e2b94f77
select
  (select count(*) from promises),
  (select count(*) from promises where fulfilled),
  (select count(*) from donations),
  coalesce((select sum(gross) from donations), 0)::text,
  coalesce((select sum(fee) from donations), 0)::text,
  coalesce((select sum(net) from donations), 0)::text,
  (select count(*) from donations where created_at > now() - interval '24 hours');
`
